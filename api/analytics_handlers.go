package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		SendError(c, http.StatusNotFound, ErrorCodeInvalidRequest, "Analytics are disabled")
		return
	}
	c.JSON(http.StatusOK, api.analytics.Summary())
}

// CorpusHandler describes the loaded corpus
func (api *API) CorpusHandler(c *gin.Context) {
	if api.corpus == nil {
		SendInternalError(c, "corpus lookup", errors.New("no corpus loaded"))
		return
	}
	c.JSON(http.StatusOK, api.corpus.CorpusInfo())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-questions",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
