package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
)

// ListingsHandler serves the property search and discovery endpoints.
type ListingsHandler struct {
	db *gorm.DB
}

func NewListingsHandler(db *gorm.DB) *ListingsHandler {
	return &ListingsHandler{db: db}
}

// Listing is one search result row: the property joined with its host and
// the property's rating rank inside its own neighborhood.
type Listing struct {
	PropertyID          int64   `json:"property_id"`
	PropertyName        string  `json:"property_name"`
	PropertyDescription string  `json:"property_description"`
	PropertyType        string  `json:"property_type"`
	Capacity            int     `json:"capacity"`
	Bedrooms            int     `json:"bedrooms"`
	Beds                int     `json:"beds"`
	Bathrooms           float64 `json:"bathrooms"`
	Neighborhood        string  `json:"neighborhood"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	RoomType            string  `json:"room_type"`
	Price               float64 `json:"price"`
	ListingURL          string  `json:"listing_url"`
	Rating              float64 `json:"rating"`
	NumberOfReviews     int     `json:"number_of_reviews"`
	HostID              int64   `json:"host_id"`
	HostName            string  `json:"host_name"`
	IsSuperhost         bool    `json:"is_superhost"`
	Verified            bool    `json:"verified"`
	HostJoinDate        string  `json:"host_join_date"`
	NeighborhoodRanking int     `json:"neighborhood_ranking"`
}

type searchQuery struct {
	MinPrice         *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice         *float64 `form:"max_price" binding:"omitempty,gte=0"`
	Neighborhoods    string   `form:"neighborhoods"`
	MinRating        *float64 `form:"min_rating" binding:"omitempty,gte=0,lte=5"`
	MinCapacity      *int     `form:"min_capacity" binding:"omitempty,gte=1"`
	MinReviews       *int     `form:"min_reviews" binding:"omitempty,gte=0"`
	SuperhostOnly    bool     `form:"superhost_only"`
	PropertyType     string   `form:"property_type"`
	Amenity          string   `form:"amenity"`
	CheckIn          string   `form:"check_in" binding:"omitempty,dateonly"`
	CheckOut         string   `form:"check_out" binding:"omitempty,dateonly"`
	MinAvailableDays *int     `form:"min_available_days" binding:"omitempty,gte=1"`
	Limit            int      `form:"limit,default=100" binding:"gte=1,lte=1000"`
	Offset           int      `form:"offset,default=0" binding:"gte=0"`
}

const listingSelect = `
SELECT
  p.id AS property_id,
  p.name AS property_name,
  p.description AS property_description,
  p.type AS property_type,
  p.capacity,
  p.bedrooms,
  p.beds,
  p.bathrooms,
  p.neighborhood,
  p.latitude,
  p.longitude,
  p.room_type,
  p.price,
  p.url AS listing_url,
  p.rating,
  p.review_count AS number_of_reviews,
  h.id AS host_id,
  h.name AS host_name,
  h.superhost AS is_superhost,
  h.verified,
  COALESCE(DATE_FORMAT(h.joined_at, '%Y-%m-%d'), '') AS host_join_date,
  (SELECT COUNT(*) + 1
     FROM properties p2
    WHERE p2.neighborhood = p.neighborhood
      AND (p2.rating > p.rating
           OR (p2.rating = p.rating AND p2.review_count > p.review_count))
  ) AS neighborhood_ranking
FROM properties p
INNER JOIN hosts h ON p.host_id = h.id`

// buildListingSearch assembles the search statement and its bound
// arguments from the validated query parameters.
func buildListingSearch(q searchQuery) (string, []interface{}) {
	cond := &database.Cond{}

	if q.MinPrice != nil {
		cond.Add("p.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		cond.Add("p.price <= ?", *q.MaxPrice)
	}
	if q.Neighborhoods != "" {
		var names []string
		for _, n := range strings.Split(q.Neighborhoods, ",") {
			if trimmed := strings.TrimSpace(n); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		cond.AddIn("p.neighborhood", names)
	}
	if q.MinRating != nil {
		cond.Add("p.rating >= ?", *q.MinRating)
	}
	if q.MinCapacity != nil {
		cond.Add("p.capacity >= ?", *q.MinCapacity)
	}
	if q.MinReviews != nil {
		cond.Add("p.review_count >= ?", *q.MinReviews)
	}
	if q.SuperhostOnly {
		cond.Add("h.superhost = 1")
	}
	if q.PropertyType != "" {
		cond.Add("p.type = ?", q.PropertyType)
	}
	if q.Amenity != "" {
		cond.Add(`EXISTS (SELECT 1 FROM amenities a
			WHERE a.property_id = p.id AND a.name = ?)`, q.Amenity)
	}

	// Availability over the calendar: a stay window requires every night
	// of the window free unless the caller asks for a minimum day count
	// instead; without a window the day count applies from today onward.
	switch {
	case q.CheckIn != "" && q.CheckOut != "" && q.MinAvailableDays != nil:
		cond.Add(`(SELECT COUNT(*) FROM calendar_entries c
			WHERE c.property_id = p.id AND c.available = 1
			  AND c.date >= ? AND c.date < ?) >= ?`,
			q.CheckIn, q.CheckOut, *q.MinAvailableDays)
	case q.CheckIn != "" && q.CheckOut != "":
		cond.Add(`(SELECT COUNT(*) FROM calendar_entries c
			WHERE c.property_id = p.id AND c.available = 1
			  AND c.date >= ? AND c.date < ?) >= DATEDIFF(?, ?)`,
			q.CheckIn, q.CheckOut, q.CheckOut, q.CheckIn)
	case q.MinAvailableDays != nil:
		cond.Add(`(SELECT COUNT(*) FROM calendar_entries c
			WHERE c.property_id = p.id AND c.available = 1
			  AND c.date >= CURDATE()) >= ?`, *q.MinAvailableDays)
	}

	query := listingSelect
	if !cond.Empty() {
		query += "\nWHERE " + cond.Clause()
	}
	query += "\nORDER BY p.rating DESC, p.review_count DESC\nLIMIT ? OFFSET ?"

	args := append(cond.Args(), q.Limit, q.Offset)
	return query, args
}

// Search handles GET /api/listings/search.
func (h *ListingsHandler) Search(c *gin.Context) {
	var q searchQuery
	if !bindQuery(c, &q) {
		return
	}

	query, args := buildListingSearch(q)
	results := make([]Listing, 0)
	if err := h.db.Raw(query, args...).Scan(&results).Error; err != nil {
		queryError(c, err, query)
		return
	}
	c.JSON(http.StatusOK, results)
}

// BestDeal is one row of the best-deals listing: cheap, well rated,
// well equipped, and run by a verified host.
type BestDeal struct {
	PropertyID     int64   `json:"property_id"`
	PropertyName   string  `json:"property_name"`
	ListingURL     string  `json:"listing_url"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	Neighborhood   string  `json:"neighborhood"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AmenitiesCount int     `json:"amenities_count"`
	HostName       string  `json:"host_name"`
	HostVerified   bool    `json:"host_verified"`
}

type bestDealsQuery struct {
	MaxPrice     float64 `form:"max_price,default=5000" binding:"gt=0"`
	MinAmenities int     `form:"min_amenities,default=3" binding:"gte=1"`
}

const bestDealsSelect = `
SELECT
  p.id AS property_id,
  p.name AS property_name,
  p.url AS listing_url,
  p.price,
  p.rating,
  p.neighborhood,
  p.latitude,
  p.longitude,
  COUNT(a.name) AS amenities_count,
  h.name AS host_name,
  h.verified AS host_verified
FROM properties p
INNER JOIN hosts h ON p.host_id = h.id
INNER JOIN amenities a ON a.property_id = p.id
WHERE p.price < ?
  AND h.verified = 1
GROUP BY p.id, p.name, p.url, p.price, p.rating, p.neighborhood,
         p.latitude, p.longitude, h.name, h.verified
HAVING COUNT(a.name) >= ?
ORDER BY p.rating DESC, amenities_count DESC, p.price ASC`

// BestDeals handles GET /api/listings/best-deals.
func (h *ListingsHandler) BestDeals(c *gin.Context) {
	var q bestDealsQuery
	if !bindQuery(c, &q) {
		return
	}

	results := make([]BestDeal, 0)
	if err := h.db.Raw(bestDealsSelect, q.MaxPrice, q.MinAmenities).Scan(&results).Error; err != nil {
		queryError(c, err, bestDealsSelect)
		return
	}
	c.JSON(http.StatusOK, results)
}
