package catalog

import (
	"fmt"
	"sort"

	"github.com/roach88/rigcheck/internal/part"
)

// Validation error codes (E200-E299)
const (
	ErrCodeDuplicateID      = "E201" // duplicate id within a category
	ErrCodeInvalidComponent = "E202" // component field error
	ErrCodeCategoryMismatch = "E203" // component category differs from its list
	ErrCodeUnknownCategory  = "E204" // list keyed by an unknown category
	ErrCodeEmpty            = "E205" // catalog has no components
)

// ValidationError represents one catalog problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks raw per-category lists before they become a Catalog.
// Returns all errors found (does not fail-fast).
func Validate(parts map[part.Category][]part.Component) []ValidationError {
	var errs []ValidationError

	total := 0
	for _, cat := range sortedKeys(parts) {
		list := parts[cat]
		total += len(list)

		if !cat.Valid() {
			errs = append(errs, ValidationError{
				Field:   string(cat),
				Message: fmt.Sprintf("unknown category %q", cat),
				Code:    ErrCodeUnknownCategory,
			})
			continue
		}

		seen := make(map[string]bool, len(list))
		for i, p := range list {
			path := fmt.Sprintf("%s[%d]", cat, i)

			if p.Category != cat {
				errs = append(errs, ValidationError{
					Field:   path + ".category",
					Message: fmt.Sprintf("component %q is %q but listed under %q", p.ID, p.Category, cat),
					Code:    ErrCodeCategoryMismatch,
				})
			}

			if p.ID != "" && seen[p.ID] {
				errs = append(errs, ValidationError{
					Field:   path + ".id",
					Message: fmt.Sprintf("duplicate id %q", p.ID),
					Code:    ErrCodeDuplicateID,
				})
			}
			seen[p.ID] = true

			for _, fe := range p.Validate() {
				if fe.Field == "category" {
					continue
				}
				errs = append(errs, ValidationError{
					Field:   path + "." + fe.Field,
					Message: fe.Message,
					Code:    ErrCodeInvalidComponent,
				})
			}
		}
	}

	if total == 0 {
		errs = append(errs, ValidationError{
			Field:   "catalog",
			Message: "catalog has no components",
			Code:    ErrCodeEmpty,
		})
	}

	return errs
}

// sortedKeys returns known categories in canonical order followed by
// unknown ones in lexical order.
func sortedKeys(parts map[part.Category][]part.Component) []part.Category {
	keys := make([]part.Category, 0, len(parts))
	for _, cat := range part.Categories {
		if _, ok := parts[cat]; ok {
			keys = append(keys, cat)
		}
	}
	var unknown []part.Category
	for cat := range parts {
		if !cat.Valid() {
			unknown = append(unknown, cat)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(keys, unknown...)
}
