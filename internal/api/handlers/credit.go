package handlers

import (
	"net/http"

	"steam-roi/internal/api/models"
	"steam-roi/internal/credit"
	"steam-roi/internal/marketdata"

	"github.com/gin-gonic/gin"
)

// CreditHandler serves financing assumptions and the yield curve.
type CreditHandler struct {
	resolver       *credit.Resolver
	curve          *marketdata.Curve
	source         string
	paybackPeriods []string
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(resolver *credit.Resolver, curve *marketdata.Curve, source string, paybackPeriods []string) *CreditHandler {
	return &CreditHandler{resolver: resolver, curve: curve, source: source, paybackPeriods: paybackPeriods}
}

// GetAssumptions handles GET /api/credit-assumptions
func (h *CreditHandler) GetAssumptions(c *gin.Context) {
	var req models.CreditAssumptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	a, err := h.resolver.Resolve(c.Request.Context(), req.CreditRating, req.PaybackPeriod)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CreditAssumptionsResponse{
		LoanToValue:   a.LoanToValue,
		InterestRate:  a.InterestRate,
		PaybackPeriod: a.PaybackPeriod,
		BenchmarkRate: a.Benchmark,
		Spread:        a.Spread,
	})
}

// ListTiers handles GET /api/credit-tiers
func (h *CreditHandler) ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, models.CreditTiersResponse{
		Tiers:          h.resolver.Tiers(),
		PaybackPeriods: h.paybackPeriods,
	})
}

// GetYieldCurve handles GET /api/yield-curve
func (h *CreditHandler) GetYieldCurve(c *gin.Context) {
	points, err := h.curve.Points(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.YieldCurveResponse{Source: h.source, Points: points})
}
