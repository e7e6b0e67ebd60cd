package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/models"
)

// Batch commit cadence per file type. Calendar files are an order of
// magnitude larger than the others, so they commit less often per row
// volume but stream instead of loading into memory.
const (
	listingsBatchSize = 500
	calendarBatchSize = 5000
	reviewsBatchSize  = 1000

	// maxLoggedErrors caps how many row failures are printed per file;
	// the rest are only counted.
	maxLoggedErrors = 5
)

// Column width limits matching the schema.
const (
	hostNameMaxLen     = 100
	propertyNameMaxLen = 255
	propertyTypeMaxLen = 100
	neighborhoodMaxLen = 100
	roomTypeMaxLen     = 30
	userNameMaxLen     = 100
)

// Coordinate fallbacks center unlocatable listings on Rio de Janeiro.
const (
	defaultCapacity  = 2
	defaultPrice     = 100.0
	defaultLatitude  = -22.9068
	defaultLongitude = -43.1729
)

// record is one CSV row keyed by header name. Missing columns read as "".
type record map[string]string

func zipRecord(header, row []string) record {
	rec := make(record, len(header))
	for i, key := range header {
		if i < len(row) {
			rec[key] = row[i]
		}
	}
	return rec
}

// readCSVFile loads a whole CSV file as header-keyed records. Used for the
// listings and reviews files, which need two passes.
func readCSVFile(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var records []record
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, zipRecord(header, row))
	}
	return records, nil
}

func hostFromRecord(rec record) *models.Host {
	h := &models.Host{
		ID:        int64(parseInt(rec["host_id"], 0)),
		Name:      truncate(fallback(rec["host_name"], "Host"), hostNameMaxLen),
		URL:       rec["host_url"],
		About:     rec["host_about"],
		Superhost: parseBool(rec["host_is_superhost"]),
		Verified:  parseBool(rec["host_identity_verified"]),
		Location:  rec["host_location"],
	}
	if d, ok := parseDate(rec["host_since"]); ok {
		h.JoinedAt = &d
	}
	return h
}

func propertyFromRecord(rec record) *models.Property {
	return &models.Property{
		ID:           int64(parseInt(rec["id"], 0)),
		Name:         truncate(fallback(rec["name"], "Untitled"), propertyNameMaxLen),
		Type:         truncate(fallback(rec["property_type"], "Apartment"), propertyTypeMaxLen),
		Capacity:     parseInt(rec["accommodates"], defaultCapacity),
		Neighborhood: truncate(fallback(rec["neighbourhood_cleansed"], "Unknown"), neighborhoodMaxLen),
		Bedrooms:     parseInt(rec["bedrooms"], 0),
		Bathrooms:    parseFloat(rec["bathrooms"], 0),
		Beds:         parseInt(rec["beds"], 0),
		Description:  rec["description"],
		URL:          rec["listing_url"],
		Rating:       parseRating(rec["review_scores_rating"]),
		Price:        parsePrice(rec["price"], defaultPrice),
		ReviewCount:  parseInt(rec["number_of_reviews"], 0),
		RoomType:     truncate(fallback(rec["room_type"], "Entire home/apt"), roomTypeMaxLen),
		Latitude:     parseFloat(rec["latitude"], defaultLatitude),
		Longitude:    parseFloat(rec["longitude"], defaultLongitude),
		HostID:       int64(parseInt(rec["host_id"], 0)),
	}
}

func calendarFromRecord(rec record) *models.CalendarEntry {
	e := &models.CalendarEntry{
		PropertyID: int64(parseInt(rec["listing_id"], 0)),
		Available:  parseBool(rec["available"]),
	}
	if d, ok := parseDate(rec["date"]); ok {
		e.Date = d
	}
	return e
}

func reviewFromRecord(rec record) *models.Review {
	r := &models.Review{
		ID:         int64(parseInt(rec["id"], 0)),
		Comment:    rec["comments"],
		UserID:     int64(parseInt(rec["reviewer_id"], 0)),
		PropertyID: int64(parseInt(rec["listing_id"], 0)),
	}
	if d, ok := parseDate(rec["date"]); ok {
		r.Date = &d
	}
	return r
}

// importListings loads the listings file in two passes. Hosts are
// collected first, keyed by id with the first row seen winning, and
// inserted before any property so property rows never dangle. Amenities
// ride along with each property that actually inserts.
func (r *Runner) importListings(path string) error {
	log.Printf("Importing listings from %s", path)
	start := time.Now()

	rows, err := readCSVFile(path)
	if err != nil {
		return err
	}

	hostOrder := make([]int64, 0)
	hostRows := make(map[int64]record)
	for _, rec := range rows {
		id := int64(parseInt(rec["host_id"], 0))
		if id == 0 {
			continue
		}
		if _, seen := hostRows[id]; !seen {
			hostRows[id] = rec
			hostOrder = append(hostOrder, id)
		}
	}

	logged := 0
	for i, id := range hostOrder {
		out, err := r.store.InsertHost(hostFromRecord(hostRows[id]))
		if err != nil {
			r.rowError(&logged, "host %d: %v", id, err)
		} else if out == Inserted {
			r.stats.HostsInserted++
		}
		if (i+1)%listingsBatchSize == 0 {
			if err := r.store.Commit(); err != nil {
				return err
			}
		}
	}
	if err := r.store.Commit(); err != nil {
		return err
	}

	for i, rec := range rows {
		p := propertyFromRecord(rec)
		out, err := r.store.InsertProperty(p)
		switch {
		case err != nil:
			r.rowError(&logged, "property %d: %v", p.ID, err)
		case out == Inserted:
			r.stats.PropertiesInserted++
			if names := parseAmenities(rec["amenities"]); len(names) > 0 {
				n, err := r.store.InsertAmenities(p.ID, names)
				r.stats.AmenitiesInserted += n
				if err != nil {
					r.rowError(&logged, "amenities for property %d: %v", p.ID, err)
				}
			}
		}
		if (i+1)%listingsBatchSize == 0 {
			if err := r.store.Commit(); err != nil {
				return err
			}
			log.Printf("  %d/%d listings processed", i+1, len(rows))
		}
	}
	if err := r.store.Commit(); err != nil {
		return err
	}

	log.Printf("Listings done in %s: %d hosts, %d properties, %d amenities",
		time.Since(start).Round(time.Second),
		r.stats.HostsInserted, r.stats.PropertiesInserted, r.stats.AmenitiesInserted)
	return nil
}

// importCalendar streams the calendar file row by row; it is far too big
// to load whole.
func (r *Runner) importCalendar(path string) error {
	log.Printf("Importing calendar from %s", path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	processed := 0
	logged := 0
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		processed++

		e := calendarFromRecord(zipRecord(header, row))
		out, err := r.store.InsertCalendarEntry(e)
		if err != nil {
			r.rowError(&logged, "calendar row %d: %v", processed, err)
		} else if out == Inserted {
			r.stats.CalendarInserted++
		}

		if processed%calendarBatchSize == 0 {
			if err := r.store.Commit(); err != nil {
				return err
			}
			log.Printf("  %d calendar rows processed", processed)
		}
	}
	if err := r.store.Commit(); err != nil {
		return err
	}

	log.Printf("Calendar done in %s: %d entries",
		time.Since(start).Round(time.Second), r.stats.CalendarInserted)
	return nil
}

// importReviews loads the reviews file in two passes: reviewers first,
// first name seen winning, then the reviews themselves.
func (r *Runner) importReviews(path string) error {
	log.Printf("Importing reviews from %s", path)
	start := time.Now()

	rows, err := readCSVFile(path)
	if err != nil {
		return err
	}

	userOrder := make([]int64, 0)
	userNames := make(map[int64]string)
	for _, rec := range rows {
		id := int64(parseInt(rec["reviewer_id"], 0))
		if id == 0 {
			continue
		}
		if _, seen := userNames[id]; !seen {
			userNames[id] = rec["reviewer_name"]
			userOrder = append(userOrder, id)
		}
	}

	logged := 0
	for i, id := range userOrder {
		u := &models.User{
			ID:   id,
			Name: truncate(fallback(userNames[id], "Guest"), userNameMaxLen),
		}
		out, err := r.store.InsertUser(u)
		if err != nil {
			r.rowError(&logged, "user %d: %v", id, err)
		} else if out == Inserted {
			r.stats.UsersInserted++
		}
		if (i+1)%reviewsBatchSize == 0 {
			if err := r.store.Commit(); err != nil {
				return err
			}
		}
	}
	if err := r.store.Commit(); err != nil {
		return err
	}

	for i, rec := range rows {
		rv := reviewFromRecord(rec)
		out, err := r.store.InsertReview(rv)
		if err != nil {
			r.rowError(&logged, "review %d: %v", rv.ID, err)
		} else if out == Inserted {
			r.stats.ReviewsInserted++
		}
		if (i+1)%reviewsBatchSize == 0 {
			if err := r.store.Commit(); err != nil {
				return err
			}
			log.Printf("  %d/%d reviews processed", i+1, len(rows))
		}
	}
	if err := r.store.Commit(); err != nil {
		return err
	}

	log.Printf("Reviews done in %s: %d users, %d reviews",
		time.Since(start).Round(time.Second),
		r.stats.UsersInserted, r.stats.ReviewsInserted)
	return nil
}
