// Package validation checks request payloads against embedded JSON Schemas.
// Rules that depend on the clock or on more than one field are checked in Go.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"realestateapi/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://realestateapi.local/schemas/"

// FieldError describes one violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full list of violations for a payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	property *jsonschema.Schema
	filter   *jsonschema.Schema
	trace    *jsonschema.Schema
	now      func() time.Time
}

// Option customizes a Validator.
type Option func(*Validator)

// WithClock overrides the clock used for the year upper bound.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New compiles the embedded schemas.
func New(opts ...Option) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := []string{"property.json", "filter.json", "trace.json"}
	for _, name := range names {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	v := &Validator{now: time.Now}
	var err error
	if v.property, err = compiler.Compile(schemaBaseURL + "property.json"); err != nil {
		return nil, fmt.Errorf("compile property schema: %w", err)
	}
	if v.filter, err = compiler.Compile(schemaBaseURL + "filter.json"); err != nil {
		return nil, fmt.Errorf("compile filter schema: %w", err)
	}
	if v.trace, err = compiler.Compile(schemaBaseURL + "trace.json"); err != nil {
		return nil, fmt.Errorf("compile trace schema: %w", err)
	}

	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Property validates a create/update payload.
func (v *Validator) Property(dto model.PropertyDto) error {
	errs, err := validate(v.property, dto)
	if err != nil {
		return err
	}

	maxYear := v.now().Year() + 1
	if dto.Year > maxYear {
		errs = append(errs, FieldError{Field: "year", Message: fmt.Sprintf("must be <= %d", maxYear)})
	}
	return finish(errs)
}

// Trace validates a sale record payload.
func (v *Validator) Trace(dto model.TraceDto) error {
	errs, err := validate(v.trace, dto)
	if err != nil {
		return err
	}
	if dto.DateSale.IsZero() {
		errs = append(errs, FieldError{Field: "dateSale", Message: "is required"})
	}
	return finish(errs)
}

// ParseFilter turns raw query parameters into a validated filter.
// Empty values count as absent.
func (v *Validator) ParseFilter(params map[string]string) (model.PropertyFilter, error) {
	var (
		f    model.PropertyFilter
		errs Errors
		doc  = map[string]any{}
	)

	if s := params["name"]; s != "" {
		doc["name"] = s
		f.Name = s
	}
	if s := params["address"]; s != "" {
		doc["address"] = s
		f.Address = s
	}

	for _, key := range []string{"minPrice", "maxPrice"} {
		s := params[key]
		if s == "" {
			continue
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			errs = append(errs, FieldError{Field: key, Message: "must be a number"})
			continue
		}
		doc[key] = n
		if key == "minPrice" {
			f.MinPrice = &n
		} else {
			f.MaxPrice = &n
		}
	}

	for _, key := range []string{"page", "pageSize"} {
		s := params[key]
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Message: "must be an integer"})
			continue
		}
		doc[key] = n
		if key == "page" {
			f.Page = n
		} else {
			f.PageSize = n
		}
	}

	schemaErrs, err := validate(v.filter, doc)
	if err != nil {
		return model.PropertyFilter{}, err
	}
	errs = append(errs, schemaErrs...)

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		errs = append(errs, FieldError{Field: "maxPrice", Message: "must be greater than or equal to minPrice"})
	}

	if err := finish(errs); err != nil {
		return model.PropertyFilter{}, err
	}
	return f, nil
}

// validate round-trips v through JSON so the schema sees exactly what a client would send.
func validate(schema *jsonschema.Schema, v any) (Errors, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var out Errors
	collect(ve, &out)
	return out, nil
}

func collect(ve *jsonschema.ValidationError, out *Errors) {
	if len(ve.Causes) == 0 {
		field := strings.TrimPrefix(ve.InstanceLocation, "/")
		if field == "" {
			field = "body"
		}
		*out = append(*out, FieldError{Field: field, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}

func finish(errs Errors) error {
	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}
