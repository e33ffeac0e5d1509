package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/datemate/internal/db"
	"github.com/alexanderramin/datemate/internal/domain"
)

const (
	noteHighlight = "highlight"
	noteTip       = "tip"

	defaultSearchLimit = 10
)

// SQLiteSpotRepo implements SpotRepo on the spots, spot_hours and
// spot_notes tables.
type SQLiteSpotRepo struct {
	db db.DBTX
}

func NewSQLiteSpotRepo(conn db.DBTX) *SQLiteSpotRepo {
	return &SQLiteSpotRepo{db: conn}
}

const spotColumns = `id, name, category, area, latitude, longitude, address, rating, review_count,
	duration_min, price_range, estimated_cost, description, accessibility, parking, contact, website`

func (r *SQLiteSpotRepo) Create(ctx context.Context, s *domain.Spot) error {
	return r.write(ctx, s, "")
}

// Upsert replaces the spot row and its hours and notes.
func (r *SQLiteSpotRepo) Upsert(ctx context.Context, s *domain.Spot) error {
	return r.write(ctx, s, ` ON CONFLICT(id) DO UPDATE SET
		name = excluded.name, category = excluded.category, area = excluded.area,
		latitude = excluded.latitude, longitude = excluded.longitude, address = excluded.address,
		rating = excluded.rating, review_count = excluded.review_count, duration_min = excluded.duration_min,
		price_range = excluded.price_range, estimated_cost = excluded.estimated_cost,
		description = excluded.description, accessibility = excluded.accessibility,
		parking = excluded.parking, contact = excluded.contact, website = excluded.website`)
}

func (r *SQLiteSpotRepo) write(ctx context.Context, s *domain.Spot, onConflict string) error {
	query := `INSERT INTO spots (` + spotColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)` + onConflict
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Category),
		s.Location.Name,
		s.Location.Latitude,
		s.Location.Longitude,
		s.Location.Address,
		s.Rating,
		s.ReviewCount,
		s.DurationMin,
		string(s.PriceRange),
		s.EstimatedCost,
		s.Description,
		s.Accessibility,
		boolToInt(s.Parking),
		s.Contact,
		s.Website,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting spot %s: %w", s.ID, err)
	}

	if onConflict != "" {
		if err := r.deleteDetails(ctx, s.ID); err != nil {
			return err
		}
	}
	for day, hours := range s.OpeningHours {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO spot_hours (spot_id, weekday, hours) VALUES (?, ?, ?)`, s.ID, day, hours); err != nil {
			return fmt.Errorf("inserting hours for %s: %w", s.ID, err)
		}
	}
	if err := r.insertNotes(ctx, s.ID, noteHighlight, s.Highlights); err != nil {
		return err
	}
	return r.insertNotes(ctx, s.ID, noteTip, s.Tips)
}

func (r *SQLiteSpotRepo) deleteDetails(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM spot_hours WHERE spot_id = ?`, id); err != nil {
		return fmt.Errorf("deleting hours for %s: %w", id, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM spot_notes WHERE spot_id = ?`, id); err != nil {
		return fmt.Errorf("deleting notes for %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteSpotRepo) insertNotes(ctx context.Context, spotID, kind string, bodies []string) error {
	for i, body := range bodies {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO spot_notes (spot_id, kind, position, body) VALUES (?, ?, ?, ?)`,
			spotID, kind, i, body); err != nil {
			return fmt.Errorf("inserting %s for %s: %w", kind, spotID, err)
		}
	}
	return nil
}

func (r *SQLiteSpotRepo) GetByID(ctx context.Context, id string) (*domain.Spot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spotColumns+` FROM spots WHERE id = ?`, id)
	s, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("spot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning spot: %w", err)
	}
	if err := r.loadDetails(ctx, []*domain.Spot{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSpotRepo) List(ctx context.Context) ([]*domain.Spot, error) {
	return r.query(ctx, `SELECT `+spotColumns+` FROM spots ORDER BY id`)
}

// Search applies f and orders by rating, then review count.
func (r *SQLiteSpotRepo) Search(ctx context.Context, f SpotFilter) ([]*domain.Spot, error) {
	var (
		where []string
		args  []any
	)
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, `(instr(area, ?) > 0 OR instr(address, ?) > 0 OR instr(id, ?) > 0)`)
		args = append(args, loc, loc, loc)
	}
	if len(f.Categories) > 0 {
		where = append(where, `category IN (`+placeholders(len(f.Categories))+`)`)
		for _, c := range f.Categories {
			args = append(args, string(c))
		}
	}
	if f.MaxCost > 0 {
		where = append(where, `estimated_cost <= ?`)
		args = append(args, f.MaxCost)
	}
	if f.MinRating > 0 {
		where = append(where, `rating >= ?`)
		args = append(args, f.MinRating)
	}

	query := `SELECT ` + spotColumns + ` FROM spots`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query += ` ORDER BY rating DESC, review_count DESC, id LIMIT ?`
	args = append(args, limit)

	return r.query(ctx, query, args...)
}

func (r *SQLiteSpotRepo) Delete(ctx context.Context, id string) error {
	if err := r.deleteDetails(ctx, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM spots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting spot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("spot %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSpotRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting spots: %w", err)
	}
	return n, nil
}

func (r *SQLiteSpotRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Spot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing spots: %w", err)
	}
	defer rows.Close()

	var spots []*domain.Spot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Close before loading details: an in-memory database has a single
	// connection.
	rows.Close()

	if err := r.loadDetails(ctx, spots); err != nil {
		return nil, err
	}
	return spots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(row rowScanner) (*domain.Spot, error) {
	var (
		s        domain.Spot
		category string
		price    string
		parking  int
	)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&category,
		&s.Location.Name,
		&s.Location.Latitude,
		&s.Location.Longitude,
		&s.Location.Address,
		&s.Rating,
		&s.ReviewCount,
		&s.DurationMin,
		&price,
		&s.EstimatedCost,
		&s.Description,
		&s.Accessibility,
		&parking,
		&s.Contact,
		&s.Website,
	)
	if err != nil {
		return nil, err
	}
	s.Category = domain.Category(category)
	s.PriceRange = domain.PriceRange(price)
	s.Parking = intToBool(parking)
	return &s, nil
}

// loadDetails fills opening hours, highlights and tips for spots.
func (r *SQLiteSpotRepo) loadDetails(ctx context.Context, spots []*domain.Spot) error {
	if len(spots) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Spot, len(spots))
	ids := make([]any, 0, len(spots))
	for _, s := range spots {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	in := placeholders(len(ids))

	hours, err := r.db.QueryContext(ctx,
		`SELECT spot_id, weekday, hours FROM spot_hours WHERE spot_id IN (`+in+`)`, ids...)
	if err != nil {
		return fmt.Errorf("loading hours: %w", err)
	}
	for hours.Next() {
		var id, day, h string
		if err := hours.Scan(&id, &day, &h); err != nil {
			hours.Close()
			return fmt.Errorf("scanning hours: %w", err)
		}
		s := byID[id]
		if s.OpeningHours == nil {
			s.OpeningHours = make(map[string]string)
		}
		s.OpeningHours[day] = h
	}
	hours.Close()

	notes, err := r.db.QueryContext(ctx,
		`SELECT spot_id, kind, body FROM spot_notes WHERE spot_id IN (`+in+`) ORDER BY spot_id, kind, position`, ids...)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	defer notes.Close()
	for notes.Next() {
		var id, kind, body string
		if err := notes.Scan(&id, &kind, &body); err != nil {
			return fmt.Errorf("scanning notes: %w", err)
		}
		s := byID[id]
		switch kind {
		case noteHighlight:
			s.Highlights = append(s.Highlights, body)
		case noteTip:
			s.Tips = append(s.Tips, body)
		}
	}
	return notes.Err()
}
