package importer

import (
	"context"
	"database/sql"
	"errors"

	driver "github.com/go-sql-driver/mysql"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/models"
)

// Store is the row-level sink the file drivers write into. Implementations
// report a per-row Outcome so drivers can keep accurate inserted counts
// without re-querying.
type Store interface {
	InsertHost(h *models.Host) (Outcome, error)
	InsertProperty(p *models.Property) (Outcome, error)
	// InsertAmenities writes the amenity names for one property and
	// returns how many rows were actually inserted; duplicates are
	// suppressed without error.
	InsertAmenities(propertyID int64, names []string) (int, error)
	InsertCalendarEntry(e *models.CalendarEntry) (Outcome, error)
	InsertUser(u *models.User) (Outcome, error)
	InsertReview(r *models.Review) (Outcome, error)
	Commit() error
}

// BulkStore extends Store with the session-level controls the import run
// needs around the drivers: relaxed integrity checks for speed, and an
// explicit rollback path on failure.
type BulkStore interface {
	Store
	DisableChecks() error
	RestoreChecks() error
	Rollback() error
}

// SQLStore implements BulkStore over a single dedicated connection. The
// check toggles and autocommit mode are session variables, so every
// statement of a run must travel over the same connection; a pooled
// handle would scatter them.
type SQLStore struct {
	ctx  context.Context
	conn *sql.Conn
}

// NewSQLStore wraps one connection checked out from the pool. The caller
// keeps ownership of the connection and closes it after the run.
func NewSQLStore(ctx context.Context, conn *sql.Conn) *SQLStore {
	return &SQLStore{ctx: ctx, conn: conn}
}

// DisableChecks relaxes integrity enforcement for the bulk run: foreign
// key and unique checks off, autocommit off so the drivers control
// transaction boundaries.
func (s *SQLStore) DisableChecks() error {
	for _, stmt := range []string{
		"SET FOREIGN_KEY_CHECKS=0",
		"SET UNIQUE_CHECKS=0",
		"SET autocommit=0",
	} {
		if _, err := s.conn.ExecContext(s.ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// RestoreChecks re-enables integrity enforcement and autocommit.
func (s *SQLStore) RestoreChecks() error {
	for _, stmt := range []string{
		"SET FOREIGN_KEY_CHECKS=1",
		"SET UNIQUE_CHECKS=1",
		"SET autocommit=1",
	} {
		if _, err := s.conn.ExecContext(s.ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Commit() error {
	_, err := s.conn.ExecContext(s.ctx, "COMMIT")
	return err
}

func (s *SQLStore) Rollback() error {
	_, err := s.conn.ExecContext(s.ctx, "ROLLBACK")
	return err
}

func (s *SQLStore) InsertHost(h *models.Host) (Outcome, error) {
	if h.ID == 0 {
		return SkippedNoID, nil
	}
	exists, err := s.exists("hosts", h.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return SkippedExists, nil
	}
	_, err = s.conn.ExecContext(s.ctx,
		`INSERT INTO hosts (id, name, url, joined_at, about, superhost, verified, location)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.URL, h.JoinedAt, h.About, h.Superhost, h.Verified, h.Location)
	return s.outcome(err)
}

func (s *SQLStore) InsertProperty(p *models.Property) (Outcome, error) {
	if p.ID == 0 {
		return SkippedNoID, nil
	}
	if p.HostID == 0 {
		return SkippedNoHost, nil
	}
	exists, err := s.exists("properties", p.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return SkippedExists, nil
	}
	_, err = s.conn.ExecContext(s.ctx,
		`INSERT INTO properties
		 (id, name, type, capacity, neighborhood, bedrooms, bathrooms, beds,
		  description, url, rating, price, review_count, room_type,
		  latitude, longitude, host_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Type, p.Capacity, p.Neighborhood, p.Bedrooms,
		p.Bathrooms, p.Beds, p.Description, p.URL, p.Rating, p.Price,
		p.ReviewCount, p.RoomType, p.Latitude, p.Longitude, p.HostID)
	return s.outcome(err)
}

func (s *SQLStore) InsertAmenities(propertyID int64, names []string) (int, error) {
	inserted := 0
	for _, name := range names {
		res, err := s.conn.ExecContext(s.ctx,
			"INSERT IGNORE INTO amenities (property_id, name) VALUES (?, ?)",
			propertyID, name)
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

func (s *SQLStore) InsertCalendarEntry(e *models.CalendarEntry) (Outcome, error) {
	if e.PropertyID == 0 {
		return SkippedNoID, nil
	}
	if e.Date.IsZero() {
		return SkippedNoDate, nil
	}
	res, err := s.conn.ExecContext(s.ctx,
		"INSERT IGNORE INTO calendar_entries (property_id, date, available) VALUES (?, ?, ?)",
		e.PropertyID, e.Date, e.Available)
	if err != nil {
		return s.outcome(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return SkippedExists, nil
	}
	return Inserted, nil
}

func (s *SQLStore) InsertUser(u *models.User) (Outcome, error) {
	if u.ID == 0 {
		return SkippedNoID, nil
	}
	exists, err := s.exists("users", u.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return SkippedExists, nil
	}
	_, err = s.conn.ExecContext(s.ctx,
		"INSERT INTO users (id, name) VALUES (?, ?)", u.ID, u.Name)
	return s.outcome(err)
}

func (s *SQLStore) InsertReview(r *models.Review) (Outcome, error) {
	if r.ID == 0 {
		return SkippedNoID, nil
	}
	if r.UserID == 0 || r.PropertyID == 0 {
		return SkippedNoRef, nil
	}
	exists, err := s.exists("reviews", r.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return SkippedExists, nil
	}
	_, err = s.conn.ExecContext(s.ctx,
		"INSERT INTO reviews (id, date, comment, user_id, property_id) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.Date, r.Comment, r.UserID, r.PropertyID)
	return s.outcome(err)
}

// exists runs a keyed existence probe. Table names come from the fixed
// call sites above, never from input.
func (s *SQLStore) exists(table string, id int64) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(s.ctx,
		"SELECT 1 FROM "+table+" WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// outcome maps an insert error to a skip where the server reported a
// constraint condition rather than a real fault: duplicate key means the
// row already exists, a foreign key failure means the referenced parent
// never made it in.
func (s *SQLStore) outcome(err error) (Outcome, error) {
	if err == nil {
		return Inserted, nil
	}
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return SkippedExists, nil
		case 1452:
			return SkippedNoRef, nil
		}
	}
	return 0, err
}
