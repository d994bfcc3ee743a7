package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/part"
)

var (
	// ErrNotFound is returned when no saved build has the requested id.
	ErrNotFound = errors.New("build not found")

	// ErrEmptyBuild is returned when saving a build with no selected parts.
	ErrEmptyBuild = errors.New("build has no parts")

	// ErrNameRequired is returned when saving a build with a blank name.
	ErrNameRequired = errors.New("name is required")
)

// SavedBuild is one entry in the gallery.
type SavedBuild struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Author      string                   `json:"author,omitempty"`
	Likes       int                      `json:"likes"`
	TotalPrice  int64                    `json:"total_price"`
	Fingerprint string                   `json:"fingerprint"`
	CreatedAt   time.Time                `json:"created_at"`
	Parts       map[part.Category]string `json:"parts"`
}

// SaveBuild stores snap under name and returns the new entry.
// The total price is computed at save time.
func (s *Store) SaveBuild(ctx context.Context, name, author string, snap build.Snapshot) (SavedBuild, error) {
	return s.insertBuild(ctx, name, author, 0, snap)
}

func (s *Store) insertBuild(ctx context.Context, name, author string, likes int, snap build.Snapshot) (SavedBuild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedBuild{}, fmt.Errorf("save build: %w", ErrNameRequired)
	}
	if snap.IsEmpty() {
		return SavedBuild{}, fmt.Errorf("save build: %w", ErrEmptyBuild)
	}

	b := SavedBuild{
		ID:          s.newID(),
		Name:        name,
		Author:      strings.TrimSpace(author),
		Likes:       likes,
		TotalPrice:  build.Aggregate(snap).Price,
		Fingerprint: build.Fingerprint(snap),
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
		Parts:       snap.Selection(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SavedBuild{}, fmt.Errorf("save build: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, name, author, likes, total_price, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.Author, b.Likes, b.TotalPrice, b.Fingerprint, b.CreatedAt.UnixMilli())
	if err != nil {
		return SavedBuild{}, fmt.Errorf("save build: %w", err)
	}

	for _, c := range snap.Components() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO build_parts (build_id, category, component_id)
			VALUES (?, ?, ?)
		`, b.ID, string(c.Category), c.ID)
		if err != nil {
			return SavedBuild{}, fmt.Errorf("save build part %s: %w", c.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SavedBuild{}, fmt.Errorf("save build: commit: %w", err)
	}
	return b, nil
}

// GetBuild returns the saved build with id.
func (s *Store) GetBuild(ctx context.Context, id string) (SavedBuild, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, author, likes, total_price, fingerprint, created_at
		FROM builds
		WHERE id = ?
	`, id)

	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedBuild{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return SavedBuild{}, err
	}

	parts, err := s.readParts(ctx, `WHERE build_id = ?`, id)
	if err != nil {
		return SavedBuild{}, err
	}
	b.Parts = parts[b.ID]
	if b.Parts == nil {
		b.Parts = map[part.Category]string{}
	}
	return b, nil
}

// ListBuilds returns up to limit saved builds, most liked first, newest
// first among equal likes. A non-positive limit returns every build.
//
// Returns an empty slice (not nil) when the gallery is empty.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]SavedBuild, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, author, likes, total_price, fingerprint, created_at
		FROM builds
		ORDER BY likes DESC, created_at DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []SavedBuild{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	if len(builds) == 0 {
		return builds, nil
	}

	parts, err := s.readParts(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range builds {
		builds[i].Parts = parts[builds[i].ID]
		if builds[i].Parts == nil {
			builds[i].Parts = map[part.Category]string{}
		}
	}
	return builds, nil
}

// Like increments the like counter of id and returns the new count.
func (s *Store) Like(ctx context.Context, id string) (int, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, `
		UPDATE builds SET likes = likes + 1
		WHERE id = ?
		RETURNING likes
	`, id).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return 0, fmt.Errorf("like build: %w", err)
	}
	return likes, nil
}

// DeleteBuild removes id and its parts.
func (s *Store) DeleteBuild(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete build: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete build: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// readParts loads build_parts grouped by build id. where is an optional
// SQL filter clause with its arguments.
func (s *Store) readParts(ctx context.Context, where string, args ...any) (map[string]map[part.Category]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT build_id, category, component_id
		FROM build_parts
		`+where+`
		ORDER BY build_id COLLATE BINARY ASC, category COLLATE BINARY ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query build parts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[part.Category]string)
	for rows.Next() {
		var buildID, cat, componentID string
		if err := rows.Scan(&buildID, &cat, &componentID); err != nil {
			return nil, fmt.Errorf("scan build part: %w", err)
		}
		if out[buildID] == nil {
			out[buildID] = make(map[part.Category]string)
		}
		out[buildID][part.Category(cat)] = componentID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build parts: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (SavedBuild, error) {
	var (
		b         SavedBuild
		createdAt int64
	)
	err := row.Scan(&b.ID, &b.Name, &b.Author, &b.Likes, &b.TotalPrice, &b.Fingerprint, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedBuild{}, err
	}
	if err != nil {
		return SavedBuild{}, fmt.Errorf("scan build: %w", err)
	}
	b.CreatedAt = time.UnixMilli(createdAt).UTC()
	return b, nil
}
