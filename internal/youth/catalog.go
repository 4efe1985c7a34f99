package youth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath is used when no catalog file is configured.
const DefaultCatalogPath = "data/youth_programs.json"

// Source provides the catalog in its file order.
type Source interface {
	Load(ctx context.Context) ([]Program, error)
}

// FileSource reads the catalog file on every Load.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if path == "" {
		path = DefaultCatalogPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{Path: path, Logger: logger}
}

// Load returns an empty catalog when the file does not exist.
func (s *FileSource) Load(_ context.Context) ([]Program, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Logger.Warn("youth program catalog not found, using an empty catalog", zap.String("path", s.Path))
			return []Program{}, nil
		}
		return nil, errors.Wrapf(err, "reading youth program catalog %q", s.Path)
	}

	programs, err := ParseCatalog(data, formatOf(s.Path))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing youth program catalog %q", s.Path)
	}

	s.Logger.Debug("youth program catalog loaded", zap.String("path", s.Path), zap.Int("programs", len(programs)))

	return programs, nil
}

// Cached loads its source once and serves the same read-only snapshot after
// that. Callers must not modify the returned slice.
type Cached struct {
	src      Source
	once     sync.Once
	programs []Program
	err      error
}

func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

func (c *Cached) Load(ctx context.Context) ([]Program, error) {
	c.once.Do(func() {
		c.programs, c.err = c.src.Load(ctx)
	})
	return c.programs, c.err
}

// Format is the serialization of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatTOML expects the records under a [[programs]] array of tables.
	FormatTOML Format = "toml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseCatalog decodes a list of program records. Missing age bounds default
// to 0 and 100. Any invalid record fails the whole catalog.
func ParseCatalog(data []byte, format Format) ([]Program, error) {
	var raw []map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case FormatTOML:
		var doc struct {
			Programs []map[string]any `toml:"programs"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		raw = doc.Programs
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	}

	programs := make([]Program, 0, len(raw))
	for i, record := range raw {
		if _, ok := record["target_age_min"]; !ok {
			record["target_age_min"] = defaultAgeMin
		}
		if _, ok := record["target_age_max"]; !ok {
			record["target_age_max"] = defaultAgeMax
		}

		var p Program
		cfg := &mapstructure.DecoderConfig{
			Metadata: nil,
			Result:   &p,
			TagName:  "json",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "creating a program decoder")
		}
		if err := decoder.Decode(record); err != nil {
			return nil, errors.Wrapf(err, "program #%d", i)
		}
		p.fillLists()
		if err := validate.Struct(p); err != nil {
			return nil, errors.Wrapf(err, "program #%d (%s)", i, p.ID)
		}

		programs = append(programs, p)
	}

	return programs, nil
}
