package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/bctides/internal/domain"
	"go.ngs.io/bctides/internal/usecase"
)

// Handler handles HTTP requests for tidal factors.
type Handler struct {
	factorUC *usecase.FactorUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(factorUC *usecase.FactorUseCase) *Handler {
	return &Handler{
		factorUC: factorUC,
	}
}

// GetFactors handles GET /v1/tidefac.
func (h *Handler) GetFactors(c *gin.Context) {
	// Parse query parameters.
	constituentsStr := c.Query("constituents")
	startStr := c.Query("start")
	daysStr := c.Query("days")

	if startStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start parameter is required"})
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid start time (expected RFC3339): %v", err)})
		return
	}

	// Parse run length in days (default: 30).
	if daysStr == "" {
		daysStr = "30"
	}
	days, err := strconv.ParseFloat(daysStr, 64)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid days parameter %q", daysStr)})
		return
	}

	// Parse constituent list (default: the major constituents).
	var constituents []string
	if constituentsStr == "" {
		constituents = domain.MajorConstituents
	} else {
		for _, name := range strings.Split(constituentsStr, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				constituents = append(constituents, name)
			}
		}
	}

	req := usecase.FactorRequest{
		Constituents: constituents,
		StartDate:    start.UTC(),
		RunDuration:  time.Duration(days * 24 * float64(time.Hour)),
	}

	response, err := h.factorUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetConstituents handles GET /v1/constituents.
func (h *Handler) GetConstituents(c *gin.Context) {
	constituents := h.factorUC.ListConstituents()

	c.JSON(http.StatusOK, gin.H{
		"constituents": constituents,
		"count":        len(constituents),
		"major":        domain.MajorConstituents,
		"minor":        domain.MinorConstituents,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
