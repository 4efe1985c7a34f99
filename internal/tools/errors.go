package tools

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/work24-mcp/work24-mcp/internal/work24"
)

// surface attaches setup guidance to configuration errors.
func surface(err error) error {
	var cfgErr *work24.ConfigurationError
	if errors.As(err, &cfgErr) {
		return errors.WithHintf(err,
			"set the %s environment variable, %s_FILE pointing to a file holding the key, or the matching key in the config file",
			cfgErr.EnvVar, cfgErr.EnvVar)
	}
	return err
}

// Describe renders err with its hints for callers that only see text.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if hint := errors.FlattenHints(err); hint != "" {
		return fmt.Sprintf("%s (hint: %s)", err, hint)
	}
	return err.Error()
}
