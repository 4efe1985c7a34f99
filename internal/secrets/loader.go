package secrets

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotConfigured is returned when neither File nor Value hold a secret.
var ErrNotConfigured = errors.New("not configured")

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the resolved secret value from the provided source. When File is
// set it takes precedence over Value. The returned secret is always trimmed.
// An error wrapping ErrNotConfigured is returned when neither File nor Value
// contain a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s from file %q", name, file)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", errors.Wrapf(ErrNotConfigured, "%s file %q is empty", name, src.File)
		}
		return "", errors.Wrapf(ErrNotConfigured, "%s", name)
	}

	return secret, nil
}

// LoadOptional is Load that treats a missing secret as empty. Unreadable files
// are still reported.
func LoadOptional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}
