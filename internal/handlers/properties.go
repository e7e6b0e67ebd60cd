package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
)

// PropertiesHandler serves the per-property detail endpoints and the
// trending listing.
type PropertiesHandler struct {
	db *gorm.DB
}

func NewPropertiesHandler(db *gorm.DB) *PropertiesHandler {
	return &PropertiesHandler{db: db}
}

type amenityRow struct {
	AmenityName string `json:"amenity_name"`
}

// Amenities handles GET /api/properties/:id/amenities.
func (h *PropertiesHandler) Amenities(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	const query = `
SELECT name AS amenity_name
FROM amenities
WHERE property_id = ?
ORDER BY name`

	results := make([]amenityRow, 0)
	if err := h.db.Raw(query, id).Scan(&results).Error; err != nil {
		queryError(c, err, query)
		return
	}
	c.JSON(http.StatusOK, results)
}

type availabilityRow struct {
	Date string `json:"date"`
}

// Availability handles GET /api/properties/:id/availability. Only dates
// marked available are returned, in ascending order.
func (h *PropertiesHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	const query = `
SELECT DATE_FORMAT(date, '%Y-%m-%d') AS date
FROM calendar_entries
WHERE property_id = ?
  AND available = 1
ORDER BY date`

	results := make([]availabilityRow, 0)
	if err := h.db.Raw(query, id).Scan(&results).Error; err != nil {
		queryError(c, err, query)
		return
	}
	c.JSON(http.StatusOK, results)
}

// PropertyReview is one review of a property, with the reviewer's overall
// review volume alongside.
type PropertyReview struct {
	ReviewID         int64  `json:"review_id"`
	ReviewDate       string `json:"review_date"`
	Comment          string `json:"comment"`
	UserID           int64  `json:"user_id"`
	UserName         string `json:"user_name"`
	PropertyName     string `json:"property_name"`
	UserTotalReviews int    `json:"user_total_reviews"`
}

type propertyReviewsQuery struct {
	MinYear *int `form:"min_year" binding:"omitempty,gte=2000,lte=2100"`
	Offset  int  `form:"offset,default=0" binding:"gte=0"`
}

// Reviews handles GET /api/properties/:id/reviews, newest first, ten per
// page.
func (h *PropertiesHandler) Reviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q propertyReviewsQuery
	if !bindQuery(c, &q) {
		return
	}

	cond := (&database.Cond{}).Add("r.property_id = ?", id)
	if q.MinYear != nil {
		cond.Add("YEAR(r.date) >= ?", *q.MinYear)
	}

	query := `
SELECT
  r.id AS review_id,
  COALESCE(DATE_FORMAT(r.date, '%Y-%m-%d'), '') AS review_date,
  r.comment,
  u.id AS user_id,
  u.name AS user_name,
  p.name AS property_name,
  (SELECT COUNT(*) FROM reviews r2 WHERE r2.user_id = u.id) AS user_total_reviews
FROM reviews r
INNER JOIN users u ON r.user_id = u.id
INNER JOIN properties p ON r.property_id = p.id
WHERE ` + cond.Clause() + `
ORDER BY r.date DESC
LIMIT 10 OFFSET ?`

	args := append(cond.Args(), q.Offset)
	results := make([]PropertyReview, 0)
	if err := h.db.Raw(query, args...).Scan(&results).Error; err != nil {
		queryError(c, err, query)
		return
	}
	c.JSON(http.StatusOK, results)
}

// TrendingProperty is a property with sustained recent review activity.
type TrendingProperty struct {
	PropertyID         int64   `json:"property_id"`
	PropertyName       string  `json:"property_name"`
	Neighborhood       string  `json:"neighborhood"`
	Price              float64 `json:"price"`
	Rating             float64 `json:"rating"`
	HostName           string  `json:"host_name"`
	IsSuperhost        bool    `json:"is_superhost"`
	RecentReviewsCount int     `json:"recent_reviews_count"`
	UniqueReviewers    int     `json:"unique_reviewers"`
	AvgCommentLength   float64 `json:"avg_comment_length"`
}

const trendingSelect = `
SELECT
  p.id AS property_id,
  p.name AS property_name,
  p.neighborhood,
  p.price,
  p.rating,
  h.name AS host_name,
  h.superhost AS is_superhost,
  COUNT(r.id) AS recent_reviews_count,
  COUNT(DISTINCT u.id) AS unique_reviewers,
  ROUND(AVG(CASE
    WHEN r.comment IS NOT NULL THEN LENGTH(r.comment)
    ELSE 0
  END), 0) AS avg_comment_length
FROM properties p
INNER JOIN hosts h ON p.host_id = h.id
INNER JOIN reviews r ON r.property_id = p.id
INNER JOIN users u ON u.id = r.user_id
WHERE r.date >= DATE_SUB(CURDATE(), INTERVAL 6 MONTH)
GROUP BY p.id, p.name, p.neighborhood, p.price, p.rating, h.name, h.superhost
HAVING recent_reviews_count >= 5
ORDER BY recent_reviews_count DESC, unique_reviewers DESC
LIMIT 20`

// Trending handles GET /api/properties/trending: at least five reviews in
// the last six months.
func (h *PropertiesHandler) Trending(c *gin.Context) {
	results := make([]TrendingProperty, 0)
	if err := h.db.Raw(trendingSelect).Scan(&results).Error; err != nil {
		queryError(c, err, trendingSelect)
		return
	}
	c.JSON(http.StatusOK, results)
}
