package api

import (
	"net/http"
	"os"
	"strings"

	"steam-roi/internal/api/handlers"
	"steam-roi/internal/api/middleware"
	"steam-roi/internal/api/models"
	"steam-roi/internal/config"
	"steam-roi/internal/data"
	"steam-roi/internal/evaluation"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface over the wired components.
func NewRouter(c *evaluation.Components, srv config.Server) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(srv.CORSOrigins))
	router.Use(middleware.Logger())

	creditHandler := handlers.NewCreditHandler(c.Credit, c.Curve, c.Config.Yield.Source, c.Config.Credit.PaybackPeriods)
	roiHandler := handlers.NewROIHandler(c.Service, c.Leads)
	rankHandler := handlers.NewRankHandler(c.History)
	zoneHandler := handlers.NewZoneHandler(c.History, data.CatalogPath(c.Config.Datasets.PriceHistoryPath), c.Location)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/credit-assumptions", creditHandler.GetAssumptions)
		api.GET("/credit-tiers", creditHandler.ListTiers)
		api.GET("/yield-curve", creditHandler.GetYieldCurve)

		api.POST("/calculate-roi", roiHandler.CalculateROI)
		api.GET("/leads", roiHandler.ListLeads)

		api.GET("/regions/rank", rankHandler.RankZones)
		api.GET("/zones", zoneHandler.ListZones)
		api.GET("/locate", zoneHandler.Locate)
	}

	serveStatic(router, srv.StaticDir)
	return router
}

// serveStatic serves the built frontend with SPA fallback when the
// directory exists. API paths never fall back to index.html.
func serveStatic(router *gin.Engine, dir string) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	}
	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", dir+"/assets")
	router.StaticFile("/favicon.ico", dir+"/favicon.ico")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(dir + "/index.html")
	})
}
