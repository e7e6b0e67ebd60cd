package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/models"
)

// fakeStore keeps inserted rows in maps and mimics the duplicate and
// missing-key handling of the real store.
type fakeStore struct {
	hosts      map[int64]*models.Host
	properties map[int64]*models.Property
	amenities  map[int64][]string
	calendar   map[string]bool
	users      map[int64]*models.User
	reviews    map[int64]*models.Review
	commits    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hosts:      make(map[int64]*models.Host),
		properties: make(map[int64]*models.Property),
		amenities:  make(map[int64][]string),
		calendar:   make(map[string]bool),
		users:      make(map[int64]*models.User),
		reviews:    make(map[int64]*models.Review),
	}
}

func (f *fakeStore) InsertHost(h *models.Host) (Outcome, error) {
	if h.ID == 0 {
		return SkippedNoID, nil
	}
	if _, ok := f.hosts[h.ID]; ok {
		return SkippedExists, nil
	}
	f.hosts[h.ID] = h
	return Inserted, nil
}

func (f *fakeStore) InsertProperty(p *models.Property) (Outcome, error) {
	if p.ID == 0 {
		return SkippedNoID, nil
	}
	if p.HostID == 0 {
		return SkippedNoHost, nil
	}
	if _, ok := f.properties[p.ID]; ok {
		return SkippedExists, nil
	}
	f.properties[p.ID] = p
	return Inserted, nil
}

func (f *fakeStore) InsertAmenities(propertyID int64, names []string) (int, error) {
	inserted := 0
	for _, name := range names {
		dup := false
		for _, have := range f.amenities[propertyID] {
			if have == name {
				dup = true
				break
			}
		}
		if !dup {
			f.amenities[propertyID] = append(f.amenities[propertyID], name)
			inserted++
		}
	}
	return inserted, nil
}

func (f *fakeStore) InsertCalendarEntry(e *models.CalendarEntry) (Outcome, error) {
	if e.PropertyID == 0 {
		return SkippedNoID, nil
	}
	if e.Date.IsZero() {
		return SkippedNoDate, nil
	}
	key := fmt.Sprintf("%d|%s", e.PropertyID, e.Date.Format("2006-01-02"))
	if f.calendar[key] {
		return SkippedExists, nil
	}
	f.calendar[key] = true
	return Inserted, nil
}

func (f *fakeStore) InsertUser(u *models.User) (Outcome, error) {
	if u.ID == 0 {
		return SkippedNoID, nil
	}
	if _, ok := f.users[u.ID]; ok {
		return SkippedExists, nil
	}
	f.users[u.ID] = u
	return Inserted, nil
}

// InsertReview mirrors SQLStore: ids must be present, but referential
// integrity is not enforced because foreign key checks are disabled for
// the whole run, so a review pointing at an unimported property lands
// anyway.
func (f *fakeStore) InsertReview(r *models.Review) (Outcome, error) {
	if r.ID == 0 {
		return SkippedNoID, nil
	}
	if r.UserID == 0 || r.PropertyID == 0 {
		return SkippedNoRef, nil
	}
	if _, ok := f.reviews[r.ID]; ok {
		return SkippedExists, nil
	}
	f.reviews[r.ID] = r
	return Inserted, nil
}

func (f *fakeStore) Commit() error        { f.commits++; return nil }
func (f *fakeStore) DisableChecks() error { return nil }
func (f *fakeStore) RestoreChecks() error { return nil }
func (f *fakeStore) Rollback() error      { return nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const listingsCSV = `id,name,host_id,host_name,host_is_superhost,host_identity_verified,host_since,price,review_scores_rating,accommodates,bedrooms,bathrooms,beds,neighbourhood_cleansed,room_type,property_type,latitude,longitude,number_of_reviews,amenities
101,Beach flat,7,Ana,t,t,2015-03-10,"$1,200.00",96,4,2,1.5,3,Copacabana,Entire home/apt,Apartment,-22.97,-43.18,12,"[""Wifi"", ""Kitchen""]"
102,Hill house,7,Ana,t,t,2015-03-10,$80.00,4.5,2,1,1,1,Santa Teresa,Private room,House,-22.92,-43.19,3,"[""Wifi""]"
103,,8,,f,f,,,,,,,,,,,,,,"not json"
104,No host,,Ghost,f,f,,,,,,,,,,,,,,
`

const calendarCSV = `listing_id,date,available
101,2024-01-01,t
101,2024-01-02,f
102,2024-01-01,t
102,bad-date,t
,2024-01-01,t
`

const reviewsCSV = `id,listing_id,reviewer_id,reviewer_name,date,comments
900,101,55,Bruno,2024-02-01,Great stay
901,102,55,Bruno,2024-02-05,Nice view
902,999,56,Carla,2024-02-06,Missing listing
903,101,,NoUser,2024-02-07,orphan
`

func TestRunnerImportsAllFiles(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", calendarCSV)
	reviews := writeFile(t, dir, "reviews.csv", reviewsCSV)

	store := newFakeStore()
	runner := NewRunner(store)
	if err := runner.Run(listings, calendar, reviews); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stats := runner.Stats()
	if stats.HostsInserted != 2 {
		t.Errorf("hosts inserted = %d, want 2", stats.HostsInserted)
	}
	if stats.PropertiesInserted != 3 {
		t.Errorf("properties inserted = %d, want 3", stats.PropertiesInserted)
	}
	if stats.AmenitiesInserted != 3 {
		t.Errorf("amenities inserted = %d, want 3", stats.AmenitiesInserted)
	}
	if stats.CalendarInserted != 3 {
		t.Errorf("calendar inserted = %d, want 3", stats.CalendarInserted)
	}
	if stats.UsersInserted != 2 {
		t.Errorf("users inserted = %d, want 2", stats.UsersInserted)
	}
	if stats.ReviewsInserted != 3 {
		t.Errorf("reviews inserted = %d, want 3", stats.ReviewsInserted)
	}
	if stats.Errors != 0 {
		t.Errorf("errors = %d, want 0", stats.Errors)
	}
}

func TestRunnerCoercesListingValues(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", "listing_id,date,available\n")
	reviews := writeFile(t, dir, "reviews.csv", "id,listing_id,reviewer_id,reviewer_name,date,comments\n")

	store := newFakeStore()
	if err := NewRunner(store).Run(listings, calendar, reviews); err != nil {
		t.Fatalf("Run: %v", err)
	}

	p := store.properties[101]
	if p == nil {
		t.Fatal("property 101 not inserted")
	}
	if p.Price != 1200 {
		t.Errorf("price = %v, want 1200", p.Price)
	}
	if p.Rating != 4.8 {
		t.Errorf("rating = %v, want 4.8", p.Rating)
	}
	if p.Bathrooms != 1.5 {
		t.Errorf("bathrooms = %v, want 1.5", p.Bathrooms)
	}

	// Row 103 has every numeric column empty; defaults apply.
	d := store.properties[103]
	if d == nil {
		t.Fatal("property 103 not inserted")
	}
	if d.Name != "Untitled" || d.Type != "Apartment" || d.Neighborhood != "Unknown" {
		t.Errorf("string fallbacks = %q/%q/%q", d.Name, d.Type, d.Neighborhood)
	}
	if d.Capacity != 2 || d.Price != 100 || d.Bathrooms != 0 {
		t.Errorf("numeric defaults = %d/%v/%v", d.Capacity, d.Price, d.Bathrooms)
	}
	if d.Latitude != -22.9068 || d.Longitude != -43.1729 {
		t.Errorf("coordinate defaults = %v/%v", d.Latitude, d.Longitude)
	}
	if len(store.amenities[103]) != 0 {
		t.Errorf("malformed amenities column produced %v", store.amenities[103])
	}
}

func TestRunnerSkipsRowsWithoutKeys(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", calendarCSV)
	reviews := writeFile(t, dir, "reviews.csv", reviewsCSV)

	store := newFakeStore()
	if err := NewRunner(store).Run(listings, calendar, reviews); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Listing 104 has no host_id, so neither the property nor any host
	// row for it may exist.
	if _, ok := store.properties[104]; ok {
		t.Error("property without host id was inserted")
	}
	// Review 902 points at listing 999 which was never imported; with
	// foreign key checks off for the run it still lands. 903 carries no
	// reviewer id at all and is skipped.
	if _, ok := store.reviews[902]; !ok {
		t.Error("review referencing an unimported property should insert while checks are off")
	}
	if _, ok := store.reviews[903]; ok {
		t.Error("review without reviewer id was inserted")
	}
}

func TestRunnerIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", calendarCSV)
	reviews := writeFile(t, dir, "reviews.csv", reviewsCSV)

	store := newFakeStore()
	if err := NewRunner(store).Run(listings, calendar, reviews); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second := NewRunner(store)
	if err := second.Run(listings, calendar, reviews); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	stats := second.Stats()
	if stats.HostsInserted != 0 || stats.PropertiesInserted != 0 ||
		stats.AmenitiesInserted != 0 || stats.UsersInserted != 0 ||
		stats.ReviewsInserted != 0 {
		t.Errorf("second run inserted rows: %+v", stats)
	}
}

// sequencedStore records session-control calls and fails every commit,
// forcing the failure path.
type sequencedStore struct {
	*fakeStore
	calls []string
}

func (s *sequencedStore) Commit() error {
	s.calls = append(s.calls, "commit")
	return errors.New("server has gone away")
}

func (s *sequencedStore) DisableChecks() error {
	s.calls = append(s.calls, "disable")
	return nil
}

func (s *sequencedStore) RestoreChecks() error {
	s.calls = append(s.calls, "restore")
	return nil
}

func (s *sequencedStore) Rollback() error {
	s.calls = append(s.calls, "rollback")
	return nil
}

func TestRunnerRollsBackBeforeRestoringChecks(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", calendarCSV)
	reviews := writeFile(t, dir, "reviews.csv", reviewsCSV)

	store := &sequencedStore{fakeStore: newFakeStore()}
	err := NewRunner(store).Run(listings, calendar, reviews)
	if err == nil {
		t.Fatal("Run should fail when commits fail")
	}

	// Restoring autocommit implicitly commits the open transaction, so
	// the rollback must have already happened by then.
	rollback, restore := -1, -1
	for i, call := range store.calls {
		switch call {
		case "rollback":
			if rollback == -1 {
				rollback = i
			}
		case "restore":
			if restore == -1 {
				restore = i
			}
		}
	}
	if rollback == -1 || restore == -1 {
		t.Fatalf("missing rollback or restore in call sequence %v", store.calls)
	}
	if rollback > restore {
		t.Errorf("rollback came after the session flags were restored: %v", store.calls)
	}
}

func TestRunnerDeduplicatesHostsAcrossListings(t *testing.T) {
	dir := t.TempDir()
	listings := writeFile(t, dir, "listings.csv", listingsCSV)
	calendar := writeFile(t, dir, "calendar.csv", "listing_id,date,available\n")
	reviews := writeFile(t, dir, "reviews.csv", "id,listing_id,reviewer_id,reviewer_name,date,comments\n")

	store := newFakeStore()
	if err := NewRunner(store).Run(listings, calendar, reviews); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Host 7 owns listings 101 and 102 but must exist exactly once, with
	// the first row's values.
	h := store.hosts[7]
	if h == nil {
		t.Fatal("host 7 not inserted")
	}
	if h.Name != "Ana" || !h.Superhost {
		t.Errorf("host 7 = %+v", h)
	}
	if len(store.hosts) != 2 {
		t.Errorf("hosts = %d, want 2", len(store.hosts))
	}
}
