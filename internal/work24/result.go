package work24

import (
	"github.com/work24-mcp/work24-mcp/internal/extract"
	"github.com/work24-mcp/work24-mcp/internal/payload"
)

// SearchResult is one page of a list endpoint. Total is the upstream's full
// match count and is independent of len(Items). Items never exceed PageSize.
type SearchResult[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Items    []T `json:"items"`
}

// parseTotal reads an upstream count leniently. Anything unparsable is 0.
func parseTotal(node payload.Value) int {
	n, ok := extract.ParseInt(node.String())
	if !ok || n < 0 {
		return 0
	}
	return n
}

func newSearchResult[T any](schema extract.Schema, total, list payload.Value, page, pageSize int) (*SearchResult[T], error) {
	items, err := extract.DecodeList[T](schema, list)
	if err != nil {
		return nil, err
	}
	if pageSize > 0 && len(items) > pageSize {
		items = items[:pageSize]
	}
	return &SearchResult[T]{
		Total:    parseTotal(total),
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}
