package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/internal/metrics"
	"github.com/gcbaptista/go-questions/services"
)

// Dependencies are the services the HTTP handlers call.
type Dependencies struct {
	Answerer  services.Answerer         // Usually the cached engine
	Corpus    services.CorpusInspector  // Describes the loaded corpus
	Analytics services.AnalyticsTracker // Optional; nil disables /analytics
	Metrics   *metrics.Metrics          // Optional; nil disables /metrics
	Defaults  config.PipelineSettings   // Match counts used when a request omits them
	Logger    *logrus.Entry             // Request and query logging
}

// API holds dependencies for API handlers.
type API struct {
	answerer  services.Answerer
	corpus    services.CorpusInspector
	analytics services.AnalyticsTracker
	metrics   *metrics.Metrics
	defaults  config.PipelineSettings
	logger    *logrus.Entry
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	defaults := deps.Defaults
	defaults.ApplyDefaults()

	logger := deps.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &API{
		answerer:  deps.Answerer,
		corpus:    deps.Corpus,
		analytics: deps.Analytics,
		metrics:   deps.Metrics,
		defaults:  defaults,
		logger:    logger,
	}
}

// SetupRoutes defines all the API routes of the question-answering server.
func SetupRoutes(router *gin.Engine, deps Dependencies) *API {
	apiHandler := NewAPI(deps)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Corpus and analytics routes
	router.GET("/corpus", apiHandler.CorpusHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Query route
	router.POST("/query", apiHandler.QueryHandler)

	// Prometheus scrape route
	if apiHandler.metrics != nil {
		router.GET("/metrics", gin.WrapH(apiHandler.metrics.Handler()))
	}

	return apiHandler
}
