package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"steam-roi/internal/api/models"
	"steam-roi/internal/data"
	"steam-roi/internal/location"
	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
)

// ZoneHandler serves the price zones on file and postal code lookups.
type ZoneHandler struct {
	store       *data.Store
	catalogPath string
	resolver    *location.Resolver
}

// NewZoneHandler creates a new zone handler. catalogPath is the sidecar
// written by ingestion; when absent the catalog is built from the history.
func NewZoneHandler(store *data.Store, catalogPath string, resolver *location.Resolver) *ZoneHandler {
	return &ZoneHandler{store: store, catalogPath: catalogPath, resolver: resolver}
}

// ListZones handles GET /api/zones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	cat, err := h.loadCatalog(c)
	if err != nil {
		respondError(c, err)
		return
	}

	zones := make([]models.ZoneInfo, len(cat.Zones))
	for i, z := range cat.Zones {
		zones[i] = models.ZoneInfo{
			Name:           z.Name,
			Market:         z.Market,
			Observations:   z.Observations,
			OperatingHours: z.OperatingHrs,
			First:          z.First,
			Last:           z.Last,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"zones":      zones,
		"updated_at": cat.UpdatedAt,
		"count":      len(zones),
	})
}

func (h *ZoneHandler) loadCatalog(c *gin.Context) (*data.ZoneCatalog, error) {
	ctx := c.Request.Context()
	if h.catalogPath != "" {
		cat, err := data.LoadZoneCatalog(h.catalogPath)
		if err == nil {
			return cat, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf(ctx, "[Zones] catalog %s: %v", h.catalogPath, err)
		}
	}
	series, err := h.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.BuildZoneCatalog("", series, time.Now()), nil
}

// Locate handles GET /api/locate
func (h *ZoneHandler) Locate(c *gin.Context) {
	var req models.LocateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.resolver.ResolveErr(c.Request.Context(), req.ZipCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LocateResponse{
		ZipCode:   req.ZipCode,
		ISORTO:    res.Region,
		Location:  res.Location,
		Zone:      data.ZoneFor(res.Location),
		Latitude:  res.Point.Lat(),
		Longitude: res.Point.Lon(),
		Nearest:   res.Nearest,
	})
}
