package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoCatalogs indicates the catalogs file defines nothing usable.
	ErrNoCatalogs = errors.New("no catalogs found in configuration")
	// ErrCatalogNotFound is returned by Find for an unknown name.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrMissingRequiredField indicates a required field is missing.
	ErrMissingRequiredField = errors.New("missing required field")
)

// catalogsFile is the on-disk layout of the catalogs YAML file.
type catalogsFile struct {
	Catalogs []map[string]any `yaml:"catalogs"`
}

// Loader reads catalog definitions from a YAML file.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, decodes and validates every catalog definition.
func (l *Loader) Load() ([]Definition, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read catalogs file %s: %w", l.path, err)
	}
	return Parse(data)
}

// Find loads the catalogs and returns the one called name.
// An empty name selects the first definition.
func (l *Loader) Find(name string) (Definition, error) {
	defs, err := l.Load()
	if err != nil {
		return Definition{}, err
	}
	if name == "" {
		return defs[0], nil
	}
	for _, d := range defs {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
}

// Parse decodes catalog definitions from YAML bytes.
func Parse(data []byte) ([]Definition, error) {
	var file catalogsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalogs YAML: %w", err)
	}
	if len(file.Catalogs) == 0 {
		return nil, ErrNoCatalogs
	}

	defs := make([]Definition, 0, len(file.Catalogs))
	for i, raw := range file.Catalogs {
		def, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("catalog %d: %w", i, err)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

func decode(raw map[string]any) (Definition, error) {
	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Definition{}, fmt.Errorf("create decoder: %w", err)
	}
	if err = decoder.Decode(raw); err != nil {
		return Definition{}, fmt.Errorf("decode catalog: %w", err)
	}

	def.applyDefaults()

	if err = validate(def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func validate(d Definition) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if d.URLTemplate == "" {
		return fmt.Errorf("%w: url_template", ErrMissingRequiredField)
	}
	if !strings.Contains(d.URLTemplate, PagePlaceholder) {
		return fmt.Errorf("catalog %s: url_template must contain %s", d.Name, PagePlaceholder)
	}
	if len(d.Categories) == 0 {
		return fmt.Errorf("%w: categories", ErrMissingRequiredField)
	}
	if d.MaxPages < 1 {
		return fmt.Errorf("catalog %s: max_pages must be at least 1", d.Name)
	}
	return nil
}
