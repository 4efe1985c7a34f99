package work24

import (
	"context"

	"github.com/work24-mcp/work24-mcp/internal/extract"
	"github.com/work24-mcp/work24-mcp/internal/payload"
)

const (
	// EndpointCompany serves strong and hiring companies.
	EndpointCompany = "callOpenApiSvcInfo210L31"

	companyRoot = "dhsOpenEmpHireInfoList"
	companyItem = "dhsOpenEmpHireInfo"

	defaultSortOrder = "DESC"
)

type CompanySearchParams struct {
	Page     int `work24:"startPage"`
	PageSize int `work24:"display"`
	// 10 strong company, 20 work-life balance, 40 youth friendly.
	CompanyTypeCodes []string `work24:"coClcd"`
	CompanyName      string   `work24:"coNm"`
	SortField        string   `work24:"sortField"`
	SortOrder        string   `work24:"sortOrderBy"`
}

type Company struct {
	CompanyID    string   `json:"company_id"`
	CompanyName  string   `json:"company_name"`
	CompanyType  *string  `json:"company_type"`
	BusinessNo   *string  `json:"business_no"`
	Summary      *string  `json:"summary"`
	Description  *string  `json:"description"`
	Homepage     *string  `json:"homepage"`
	MainBusiness *string  `json:"main_business"`
	LogoURL      *string  `json:"logo_url"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

var companySchema = extract.Schema{
	extract.Text("company_id", "", "empCoNo"),
	extract.Text("company_name", "", "coNm"),
	extract.OptText("company_type", "coClcdNm"),
	extract.OptText("business_no", "busino"),
	extract.OptText("summary", "coIntroSummaryCont"),
	extract.OptText("description", "coIntroCont"),
	extract.OptText("homepage", "homepg"),
	extract.OptText("main_business", "mainBusiCont"),
	extract.OptText("logo_url", "regLogImgNm"),
	extract.OptFloat("latitude", "mapCoorY"),
	extract.OptFloat("longitude", "mapCoorX"),
}

// FindStrongCompany searches companies. Companies share the recruit credential.
func (c *Client) FindStrongCompany(ctx context.Context, params *CompanySearchParams) (*SearchResult[Company], error) {
	p := *params
	if p.SortOrder == "" {
		p.SortOrder = defaultSortOrder
	}

	q := buildParams(&p)
	q["callTp"] = "L"

	tree, err := c.Call(ctx, Request{
		Endpoint: EndpointCompany,
		Params:   q,
		API:      Recruit,
		Family:   FamilyWK,
	})
	if err != nil {
		return nil, err
	}

	return parseCompanyList(tree, p.Page, p.PageSize)
}

func parseCompanyList(tree payload.Value, page, pageSize int) (*SearchResult[Company], error) {
	root := tree.Get(companyRoot)
	return newSearchResult[Company](companySchema, root.Get("total"), root.Get(companyItem), page, pageSize)
}
