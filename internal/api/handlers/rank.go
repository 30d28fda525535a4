package handlers

import (
	"net/http"
	"time"

	"steam-roi/internal/analysis"
	"steam-roi/internal/api/models"
	"steam-roi/internal/data"
	"steam-roi/internal/dcf"

	"github.com/gin-gonic/gin"
)

// RankHandler ranks price zones by how often running the plant pays off.
type RankHandler struct {
	store *data.Store
	now   func() time.Time
}

// NewRankHandler creates a new rank handler
func NewRankHandler(store *data.Store) *RankHandler {
	return &RankHandler{store: store, now: time.Now}
}

// RankZones handles GET /api/regions/rank
func (h *RankHandler) RankZones(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Lookback == "" {
		req.Lookback = "12m"
	}
	span, err := dcf.ParseLookback(req.Lookback)
	if err != nil {
		respondError(c, err)
		return
	}

	series, err := h.store.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.now()
	ranked := analysis.RankByCapacityFactor(data.GroupByZone(data.Window(series, now.Add(-span), now)))

	// Apply limit
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:              r.Rank,
			Zone:              r.Zone,
			Count:             r.Count,
			OperatingHours:    r.OperatingCount,
			CapacityFactor:    r.CapacityFactor,
			AvgOperatingPrice: r.AvgOperatingPrice,
			MeanPrice:         r.MeanPrice,
			P05Price:          r.P05Price,
			P95Price:          r.P95Price,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Lookback: req.Lookback, Rankings: rankings})
}
