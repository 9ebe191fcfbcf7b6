package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-questions/model"
	"github.com/gcbaptista/go-questions/services"
)

// QueryHandler answers a natural-language query.
// Request Body: services.QueryRequest
func (api *API) QueryHandler(c *gin.Context) {
	startTime := time.Now()

	var req services.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if IsBlankQuery(req.Query) {
		SendInvalidQueryError(c, "Query cannot be empty")
		return
	}

	fileMatches, sentenceMatches, result := ResolveMatches(&req, api.defaults)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	answer, err := api.answerer.Answer(c.Request.Context(), req.Query, fileMatches, sentenceMatches)
	if err != nil {
		api.observe("error", answer, time.Since(startTime))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeQueryFailed, "Query was cancelled: "+err.Error())
			return
		}
		SendQueryError(c, err)
		return
	}

	responseTime := time.Since(startTime)
	outcome := "answered"
	if len(answer.Sentences) == 0 {
		outcome = "empty"
	}
	api.observe(outcome, answer, responseTime)

	if api.analytics != nil {
		api.analytics.TrackQuery(model.QueryEvent{
			QueryID:       answer.QueryID,
			Query:         req.Query,
			ResponseTime:  responseTime,
			FileCount:     len(answer.Files),
			SentenceCount: len(answer.Sentences),
			Cached:        answer.Cached,
		})
	}

	api.logger.WithFields(logrus.Fields{
		"query_id":  answer.QueryID,
		"sentences": len(answer.Sentences),
		"cached":    answer.Cached,
	}).Debug("query answered")

	c.JSON(http.StatusOK, answer)
}

// observe records query metrics when metrics are enabled
func (api *API) observe(outcome string, answer services.Answer, took time.Duration) {
	if api.metrics == nil {
		return
	}
	api.metrics.ObserveQuery(outcome, answer.Cached, len(answer.Sentences), took)
	if outcome == "error" {
		return
	}
	if answer.Cached {
		api.metrics.CacheHitsTotal.Inc()
	} else {
		api.metrics.CacheMissesTotal.Inc()
	}
}
