package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApenasAngelo/AirbnDB-backend/internal/database"
)

// HostsHandler serves the host profile, per-host property listing and the
// neighborhood host ranking.
type HostsHandler struct {
	db *gorm.DB
}

func NewHostsHandler(db *gorm.DB) *HostsHandler {
	return &HostsHandler{db: db}
}

// HostProfile is a host joined with aggregates over their portfolio.
type HostProfile struct {
	HostID          int64   `json:"host_id"`
	HostName        string  `json:"host_name"`
	HostURL         string  `json:"host_url"`
	HostJoinDate    string  `json:"host_join_date"`
	HostDescription string  `json:"host_description"`
	IsSuperhost     bool    `json:"is_superhost"`
	Verified        bool    `json:"verified"`
	HostLocation    string  `json:"host_location"`
	TotalProperties int     `json:"total_properties"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
}

const hostProfileSelect = `
SELECT
  h.id AS host_id,
  h.name AS host_name,
  h.url AS host_url,
  COALESCE(DATE_FORMAT(h.joined_at, '%Y-%m-%d'), '') AS host_join_date,
  h.about AS host_description,
  h.superhost AS is_superhost,
  h.verified,
  h.location AS host_location,
  COUNT(DISTINCT p.id) AS total_properties,
  COALESCE(ROUND(AVG(p.rating), 2), 0) AS average_rating,
  COALESCE(SUM(p.review_count), 0) AS total_reviews
FROM hosts h
LEFT JOIN properties p ON p.host_id = h.id
WHERE h.id = ?
GROUP BY h.id, h.name, h.url, h.joined_at, h.about,
         h.superhost, h.verified, h.location`

// Profile handles GET /api/hosts/:id/profile, answering 404 for unknown
// hosts.
func (h *HostsHandler) Profile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var profile HostProfile
	result := h.db.Raw(hostProfileSelect, id).Scan(&profile)
	if result.Error != nil {
		queryError(c, result.Error, hostProfileSelect)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "host not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// HostProperty is one property of a host, ranked against the host's other
// properties by rating and then review volume.
type HostProperty struct {
	PropertyID                 int64   `json:"property_id"`
	PropertyName               string  `json:"property_name"`
	PropertyType               string  `json:"property_type"`
	Neighborhood               string  `json:"neighborhood"`
	Price                      float64 `json:"price"`
	Rating                     float64 `json:"rating"`
	NumberOfReviews            int     `json:"number_of_reviews"`
	Capacity                   int     `json:"capacity"`
	Bedrooms                   int     `json:"bedrooms"`
	Bathrooms                  float64 `json:"bathrooms"`
	RankingAmongHostProperties int     `json:"ranking_among_host_properties"`
}

type hostPropertiesQuery struct {
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

const hostPropertiesSelect = `
SELECT
  p.id AS property_id,
  p.name AS property_name,
  p.type AS property_type,
  p.neighborhood,
  p.price,
  p.rating,
  p.review_count AS number_of_reviews,
  p.capacity,
  p.bedrooms,
  p.bathrooms,
  (SELECT COUNT(*) + 1
     FROM properties p2
    WHERE p2.host_id = p.host_id
      AND (p2.rating > p.rating
           OR (p2.rating = p.rating AND p2.review_count > p.review_count))
  ) AS ranking_among_host_properties
FROM properties p
WHERE p.host_id = ?
ORDER BY p.rating DESC, p.review_count DESC
LIMIT 5 OFFSET ?`

// Properties handles GET /api/hosts/:id/properties, five per page.
func (h *HostsHandler) Properties(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q hostPropertiesQuery
	if !bindQuery(c, &q) {
		return
	}

	results := make([]HostProperty, 0)
	if err := h.db.Raw(hostPropertiesSelect, id, q.Offset).Scan(&results).Error; err != nil {
		queryError(c, err, hostPropertiesSelect)
		return
	}
	c.JSON(http.StatusOK, results)
}

// HostRanking is one host's aggregate standing within a neighborhood.
// Only hosts with at least two properties there are ranked; ties on
// rating and review volume share a rank.
type HostRanking struct {
	HostID               int64   `json:"host_id"`
	HostName             string  `json:"host_name"`
	IsSuperhost          bool    `json:"is_superhost"`
	Verified             bool    `json:"verified"`
	Neighborhood         string  `json:"neighborhood"`
	TotalProperties      int     `json:"total_properties"`
	AvgRating            float64 `json:"avg_rating"`
	TotalReviews         int     `json:"total_reviews"`
	AvgPrice             float64 `json:"avg_price"`
	NeighborhoodHostRank int     `json:"neighborhood_host_rank"`
}

type hostRankingQuery struct {
	Neighborhood string `form:"neighborhood"`
}

// Ranking handles GET /api/hosts/ranking.
func (h *HostsHandler) Ranking(c *gin.Context) {
	var q hostRankingQuery
	if !bindQuery(c, &q) {
		return
	}

	cond := &database.Cond{}
	if q.Neighborhood != "" {
		cond.Add("p.neighborhood = ?", q.Neighborhood)
	}

	query := `
SELECT
  h.id AS host_id,
  h.name AS host_name,
  h.superhost AS is_superhost,
  h.verified,
  p.neighborhood,
  COUNT(DISTINCT p.id) AS total_properties,
  ROUND(AVG(p.rating), 2) AS avg_rating,
  SUM(p.review_count) AS total_reviews,
  ROUND(AVG(p.price), 2) AS avg_price,
  (SELECT COUNT(DISTINCT h2.id)
     FROM hosts h2
    INNER JOIN (
      SELECT host_id, AVG(rating) AS avg_rating, SUM(review_count) AS total_reviews
      FROM properties
      WHERE neighborhood = p.neighborhood
      GROUP BY host_id
      HAVING COUNT(id) >= 2
    ) hs ON h2.id = hs.host_id
    WHERE hs.avg_rating > AVG(p.rating)
       OR (hs.avg_rating = AVG(p.rating) AND hs.total_reviews > SUM(p.review_count))
  ) + 1 AS neighborhood_host_rank
FROM hosts h
INNER JOIN properties p ON h.id = p.host_id`
	if !cond.Empty() {
		query += "\nWHERE " + cond.Clause()
	}
	query += `
GROUP BY h.id, h.name, h.superhost, h.verified, p.neighborhood
HAVING COUNT(p.id) >= 2
ORDER BY avg_rating DESC, total_reviews DESC
LIMIT 50`

	results := make([]HostRanking, 0)
	if err := h.db.Raw(query, cond.Args()...).Scan(&results).Error; err != nil {
		queryError(c, err, query)
		return
	}
	c.JSON(http.StatusOK, results)
}
