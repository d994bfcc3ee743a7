package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/part"
)

// MissingPartsError lists saved part references the catalog no longer has.
type MissingPartsError struct {
	BuildID string
	Missing []string // "category/id"
}

func (e *MissingPartsError) Error() string {
	return fmt.Sprintf("build %s references unknown parts: %s", e.BuildID, strings.Join(e.Missing, ", "))
}

// Resolve looks up every part of saved in cat and returns the resulting
// snapshot. Parts the catalog cannot supply are left empty and reported
// in a *MissingPartsError alongside the partial snapshot.
func Resolve(cat *catalog.Catalog, saved SavedBuild) (build.Snapshot, error) {
	st := build.NewState()
	var missing []string

	for _, c := range part.Categories {
		id, ok := saved.Parts[c]
		if !ok {
			continue
		}
		comp, err := cat.Lookup(c, id)
		if errors.Is(err, catalog.ErrNotFound) {
			missing = append(missing, string(c)+"/"+id)
			continue
		}
		if err != nil {
			return build.Snapshot{}, err
		}
		if err := st.Select(comp); err != nil {
			return build.Snapshot{}, err
		}
	}

	var unknown []string
	for c, id := range saved.Parts {
		if !c.Valid() {
			unknown = append(unknown, string(c)+"/"+id)
		}
	}
	sort.Strings(unknown)
	missing = append(missing, unknown...)

	if len(missing) > 0 {
		return st.Snapshot(), &MissingPartsError{BuildID: saved.ID, Missing: missing}
	}
	return st.Snapshot(), nil
}
