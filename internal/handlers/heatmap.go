package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HeatmapHandler serves the map overlay data sets.
type HeatmapHandler struct {
	db *gorm.DB
}

func NewHeatmapHandler(db *gorm.DB) *HeatmapHandler {
	return &HeatmapHandler{db: db}
}

// DensityPoint weights every property equally on the map.
type DensityPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity int     `json:"intensity"`
}

const densitySelect = `
SELECT
  latitude AS lat,
  longitude AS lng,
  1 AS intensity
FROM properties
WHERE latitude IS NOT NULL
  AND longitude IS NOT NULL`

// Density handles GET /api/heatmap/density.
func (h *HeatmapHandler) Density(c *gin.Context) {
	results := make([]DensityPoint, 0)
	if err := h.db.Raw(densitySelect).Scan(&results).Error; err != nil {
		queryError(c, err, densitySelect)
		return
	}
	c.JSON(http.StatusOK, results)
}

// PricePoint carries the price normalized to [0,1] across the whole
// dataset as its intensity.
type PricePoint struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Price     float64  `json:"price"`
	Intensity *float64 `json:"intensity"`
}

const priceSelect = `
SELECT
  latitude AS lat,
  longitude AS lng,
  price,
  (price - MIN(price) OVER ()) /
  NULLIF(MAX(price) OVER () - MIN(price) OVER (), 0) AS intensity
FROM properties
WHERE latitude IS NOT NULL
  AND longitude IS NOT NULL
  AND price IS NOT NULL`

// Price handles GET /api/heatmap/price. When every property costs the
// same the normalization divides by zero and yields NULL; those points
// come back as mid-scale.
func (h *HeatmapHandler) Price(c *gin.Context) {
	results := make([]PricePoint, 0)
	if err := h.db.Raw(priceSelect).Scan(&results).Error; err != nil {
		queryError(c, err, priceSelect)
		return
	}
	for i := range results {
		if results[i].Intensity == nil {
			mid := 0.5
			results[i].Intensity = &mid
		}
	}
	c.JSON(http.StatusOK, results)
}
