package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rigcheck/internal/part"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default.cue
var defaultCUE []byte

// LoadError is a decoding failure, with a source position when the CUE
// toolchain reported one.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Record is the on-disk shape of one component. Scenario files reuse it
// for inline parts.
type Record struct {
	ID                 string            `json:"id" yaml:"id"`
	Name               string            `json:"name" yaml:"name"`
	Category           string            `json:"category,omitempty" yaml:"category,omitempty"`
	Price              int64             `json:"price" yaml:"price"`
	PowerDrawWatts     *int              `json:"power_draw_watts,omitempty" yaml:"power_draw_watts,omitempty"`
	PowerSupplyWattage *int              `json:"power_supply_wattage,omitempty" yaml:"power_supply_wattage,omitempty"`
	PowerConsumption   *int              `json:"power_consumption,omitempty" yaml:"power_consumption,omitempty"`
	Socket             string            `json:"socket,omitempty" yaml:"socket,omitempty"`
	FormFactor         string            `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
	Specs              map[string]string `json:"specs,omitempty" yaml:"specs,omitempty"`
}

// document is the on-disk shape of a catalog file.
type document struct {
	Catalog map[string][]Record `json:"catalog" yaml:"catalog"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := DecodeCUE(defaultCUE, "default.cue")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// Default returns the embedded reference catalog. The value is shared and
// must not be modified.
func Default() *Catalog {
	return defaultCatalog()
}

// LoadFile reads a catalog, choosing the decoder by file extension
// (.cue, .yaml/.yml, .json). The result has passed Validate.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return DecodeCUE(data, path)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (supported: .cue, .yaml, .yml, .json)", filepath.Ext(path))
	}
}

// DecodeCUE unifies data with the catalog schema and decodes it.
func DecodeCUE(data []byte, filename string) (*Catalog, error) {
	parts, err := decodeCUEParts(data, filename)
	if err != nil {
		return nil, err
	}
	return build(parts)
}

// DecodeYAML decodes a YAML catalog. Unknown fields are rejected.
func DecodeYAML(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	parts, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	return build(parts)
}

// DecodeJSON decodes a JSON catalog. Unknown fields are rejected.
func DecodeJSON(data []byte) (*Catalog, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	parts, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	return build(parts)
}

// ValidateFile decodes path without building a Catalog and returns every
// validation problem. A non-nil error means the file could not be decoded.
func ValidateFile(path string) ([]ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parts map[part.Category][]part.Component
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		parts, err = decodeCUEParts(data, path)
	case ".yaml", ".yml":
		var doc document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&doc); err == nil {
			parts, err = fromDocument(doc)
		}
	case ".json":
		var doc document
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err = dec.Decode(&doc); err == nil {
			parts, err = fromDocument(doc)
		}
	default:
		err = fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return Validate(parts), nil
}

func decodeCUEParts(data []byte, filename string) (map[part.Category][]part.Component, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	catVal := v.LookupPath(cue.ParsePath("catalog"))
	if !catVal.Exists() {
		return nil, &LoadError{Field: "catalog", Message: "catalog is required", Pos: v.Pos()}
	}

	iter, err := catVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	parts := make(map[part.Category][]part.Component)
	for iter.Next() {
		var recs []Record
		if err := iter.Value().Decode(&recs); err != nil {
			return nil, formatCUEError(err)
		}
		cat, comps, err := convert(iter.Selector().Unquoted(), recs)
		if err != nil {
			return nil, &LoadError{Field: "catalog." + iter.Selector().String(), Message: err.Error(), Pos: iter.Value().Pos(), Err: err}
		}
		parts[cat] = append(parts[cat], comps...)
	}
	return parts, nil
}

func fromDocument(doc document) (map[part.Category][]part.Component, error) {
	if doc.Catalog == nil {
		return nil, &LoadError{Field: "catalog", Message: "catalog is required"}
	}
	parts := make(map[part.Category][]part.Component, len(doc.Catalog))
	for key, recs := range doc.Catalog {
		cat, comps, err := convert(key, recs)
		if err != nil {
			return nil, &LoadError{Field: "catalog." + key, Message: err.Error(), Err: err}
		}
		parts[cat] = append(parts[cat], comps...)
	}
	return parts, nil
}

// convert turns the records listed under key into components.
func convert(key string, recs []Record) (part.Category, []part.Component, error) {
	cat, err := part.ParseCategory(key)
	if err != nil {
		return "", nil, err
	}
	comps := make([]part.Component, 0, len(recs))
	for _, r := range recs {
		c, err := r.Component(cat)
		if err != nil {
			return "", nil, err
		}
		comps = append(comps, c)
	}
	return cat, comps, nil
}

// Component converts r into a component of the given list category.
// An explicit category on the record wins so Validate can report a mismatch.
func (r Record) Component(listed part.Category) (part.Component, error) {
	cat := listed
	if r.Category != "" {
		parsed, err := part.ParseCategory(r.Category)
		if err != nil {
			return part.Component{}, fmt.Errorf("component %q: %w", r.ID, err)
		}
		cat = parsed
	}

	c := part.Component{
		ID:         r.ID,
		Name:       r.Name,
		Category:   cat,
		Price:      r.Price,
		Socket:     r.Socket,
		FormFactor: r.FormFactor,
		Specs:      r.Specs,
	}
	if r.PowerConsumption != nil {
		c.PowerDrawWatts, c.PowerSupplyWattage = part.FromLegacyPower(cat, *r.PowerConsumption)
	}
	if r.PowerDrawWatts != nil {
		c.PowerDrawWatts = *r.PowerDrawWatts
	}
	if r.PowerSupplyWattage != nil {
		c.PowerSupplyWattage = *r.PowerSupplyWattage
	}
	return c, nil
}

// build validates parts and constructs the catalog.
func build(parts map[part.Category][]part.Component) (*Catalog, error) {
	if errs := Validate(parts); len(errs) > 0 {
		return nil, &InvalidError{Errors: errs}
	}
	return New(parts), nil
}

// InvalidError carries every validation problem of a rejected catalog.
type InvalidError struct {
	Errors []ValidationError
}

func (e *InvalidError) Error() string {
	if len(e.Errors) == 1 {
		return "invalid catalog: " + e.Errors[0].Error()
	}
	return fmt.Sprintf("invalid catalog: %s (and %d more)", e.Errors[0].Error(), len(e.Errors)-1)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
			Err:     err,
		}
	}
	return err
}
