// Package tools exposes the Work24 operations and the youth program matcher as
// named tools, callable from the CLI or over MCP.
package tools

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	mcp "github.com/metoro-io/mcp-golang"
	"go.uber.org/zap"

	"github.com/work24-mcp/work24-mcp/internal/logger"
)

// ErrFailedUnmarshalInput is returned when the JSON arguments of a call cannot
// be decoded.
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal tool input")

// McpServerRegistrator is the subset of an MCP server used to register tools.
type McpServerRegistrator interface {
	RegisterTool(name string, description string, handler any) error
}

// Tool is a named operation with JSON arguments and a JSON result.
type Tool interface {
	Name() string
	Description() string
	// Call decodes input, runs the tool and returns the indented JSON result.
	Call(ctx context.Context, input string) (string, error)
	RegisterMCP(registrator McpServerRegistrator) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type tool[I any, O any] struct {
	name        string
	description string
	logger      *zap.Logger
	run         func(ctx context.Context, in *I) (O, error)
}

func newTool[I any, O any](name, description string, log *zap.Logger, run func(context.Context, *I) (O, error)) *tool[I, O] {
	return &tool[I, O]{
		name:        name,
		description: description,
		logger:      logger.WithFields(log, zap.String(logger.FieldTool, name)),
		run:         run,
	}
}

func (t *tool[I, O]) Name() string { return t.name }

func (t *tool[I, O]) Description() string { return t.description }

// Run applies defaults, validates the arguments and runs the tool.
func (t *tool[I, O]) Run(ctx context.Context, in *I) (O, error) {
	var zero O
	if in == nil {
		in = new(I)
	}
	if d, ok := any(in).(defaulter); ok {
		d.setDefaults()
	}
	if err := validate.Struct(in); err != nil {
		t.logger.Info("invalid tool arguments", zap.Error(err))
		return zero, errors.Wrapf(err, "%s: invalid arguments", t.name)
	}

	start := time.Now()
	t.logger.Info("tool called", zap.Any("args", in))

	out, err := t.run(ctx, in)
	if err != nil {
		t.logger.Error("tool failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return zero, err
	}

	t.logger.Info("tool finished", zap.Duration("took", time.Since(start)))

	return out, nil
}

func (t *tool[I, O]) Call(ctx context.Context, input string) (string, error) {
	in := new(I)
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal([]byte(input), in); err != nil {
			return "", errors.Wrapf(ErrFailedUnmarshalInput, "%s: %v", t.name, err)
		}
	}

	out, err := t.Run(ctx, in)
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "%s: encoding result", t.name)
	}
	return string(b), nil
}

func (t *tool[I, O]) RegisterMCP(registrator McpServerRegistrator) error {
	return registrator.RegisterTool(t.name, t.description, t.RunMCP)
}

// RunMCP is the MCP handler. Errors carry their hint in the message since MCP
// clients only see the text.
func (t *tool[I, O]) RunMCP(ctx context.Context, in *I) (*mcp.ToolResponse, error) {
	out, err := t.Run(ctx, in)
	if err != nil {
		return nil, errors.New(Describe(err))
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encoding result", t.name)
	}
	return mcp.NewToolResponse(mcp.NewTextContent(string(b))), nil
}
