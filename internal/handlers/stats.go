package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// NeighborhoodStats aggregates the listings of one neighborhood.
type NeighborhoodStats struct {
	Neighborhood     string  `json:"neighborhood"`
	TotalListings    int     `json:"total_listings"`
	AveragePrice     float64 `json:"average_price"`
	AverageRating    float64 `json:"average_rating"`
	AverageCapacity  float64 `json:"average_capacity"`
	AverageBedrooms  float64 `json:"average_bedrooms"`
	AverageBathrooms float64 `json:"average_bathrooms"`
	AverageReviews   float64 `json:"average_reviews"`
	SuperhostCount   int     `json:"superhost_count"`
	VerifiedCount    int     `json:"verified_count"`
}

const neighborhoodStatsSelect = `
SELECT
  p.neighborhood,
  COUNT(DISTINCT p.id) AS total_listings,
  ROUND(AVG(p.price), 2) AS average_price,
  ROUND(AVG(p.rating), 2) AS average_rating,
  ROUND(AVG(p.capacity), 2) AS average_capacity,
  ROUND(AVG(p.bedrooms), 2) AS average_bedrooms,
  ROUND(AVG(p.bathrooms), 2) AS average_bathrooms,
  ROUND(AVG(p.review_count), 2) AS average_reviews,
  SUM(CASE WHEN h.superhost = 1 THEN 1 ELSE 0 END) AS superhost_count,
  SUM(CASE WHEN h.verified = 1 THEN 1 ELSE 0 END) AS verified_count
FROM properties p
INNER JOIN hosts h ON p.host_id = h.id
GROUP BY p.neighborhood
ORDER BY total_listings DESC`

// Neighborhoods handles GET /api/neighborhoods/stats.
func (h *StatsHandler) Neighborhoods(c *gin.Context) {
	results := make([]NeighborhoodStats, 0)
	if err := h.db.Raw(neighborhoodStatsSelect).Scan(&results).Error; err != nil {
		queryError(c, err, neighborhoodStatsSelect)
		return
	}
	c.JSON(http.StatusOK, results)
}

// OverviewStats is the single-row dataset summary for the dashboard
// cards.
type OverviewStats struct {
	TotalProperties    int     `json:"total_properties"`
	TotalHosts         int     `json:"total_hosts"`
	TotalNeighborhoods int     `json:"total_neighborhoods"`
	TotalUsers         int     `json:"total_users"`
	OverallAvgPrice    float64 `json:"overall_avg_price"`
	OverallAvgRating   float64 `json:"overall_avg_rating"`
	TotalSuperhosts    int     `json:"total_superhosts"`
	TotalVerifiedHosts int     `json:"total_verified_hosts"`
	TotalReviews       int     `json:"total_reviews"`
}

const overviewSelect = `
SELECT
  COUNT(DISTINCT p.id) AS total_properties,
  COUNT(DISTINCT h.id) AS total_hosts,
  COUNT(DISTINCT p.neighborhood) AS total_neighborhoods,
  COUNT(DISTINCT u.id) AS total_users,
  ROUND(AVG(p.price), 2) AS overall_avg_price,
  ROUND(AVG(p.rating), 2) AS overall_avg_rating,
  SUM(CASE WHEN h.superhost = 1 THEN 1 ELSE 0 END) AS total_superhosts,
  SUM(CASE WHEN h.verified = 1 THEN 1 ELSE 0 END) AS total_verified_hosts,
  COUNT(DISTINCT r.id) AS total_reviews
FROM properties p
INNER JOIN hosts h ON p.host_id = h.id
LEFT JOIN reviews r ON r.property_id = p.id
LEFT JOIN users u ON u.id = r.user_id`

// Overview handles GET /api/stats/overview, answering 404 when the
// dataset is empty.
func (h *StatsHandler) Overview(c *gin.Context) {
	var stats OverviewStats
	result := h.db.Raw(overviewSelect).Scan(&stats)
	if result.Error != nil {
		queryError(c, result.Error, overviewSelect)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no statistics available"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
