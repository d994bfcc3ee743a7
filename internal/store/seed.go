package store

import (
	"context"
	"fmt"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/part"
)

// Seed is a gallery entry written by SeedIfEmpty.
type Seed struct {
	Name   string
	Author string
	Likes  int
	Parts  map[part.Category]string
}

// CommunityBuilds is the starter gallery for the built-in catalog.
var CommunityBuilds = []Seed{
	{
		Name:   "Геймерский Монстр 4K",
		Author: "ProGamer2024",
		Likes:  142,
		Parts: map[part.Category]string{
			part.Processor:    "1",
			part.GraphicsCard: "3",
			part.Motherboard:  "5",
			part.Memory:       "7",
			part.Storage:      "8",
			part.PowerSupply:  "9",
			part.Enclosure:    "11",
		},
	},
}

// SeedIfEmpty saves seeds, resolved against cat, when the gallery holds no
// builds. It returns the number of builds written. A seed referencing a
// part cat does not have fails the whole call before anything is written.
func (s *Store) SeedIfEmpty(ctx context.Context, cat *catalog.Catalog, seeds []Seed) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count builds: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	snaps := make([]build.Snapshot, len(seeds))
	for i, seed := range seeds {
		snap, err := Resolve(cat, SavedBuild{ID: seed.Name, Parts: seed.Parts})
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", seed.Name, err)
		}
		snaps[i] = snap
	}

	for i, seed := range seeds {
		if _, err := s.insertBuild(ctx, seed.Name, seed.Author, seed.Likes, snaps[i]); err != nil {
			return i, fmt.Errorf("seed %q: %w", seed.Name, err)
		}
	}
	return len(seeds), nil
}
