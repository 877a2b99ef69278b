package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/service"
)

type AnalyticsHandler struct {
	insightService service.InsightService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(insightService service.InsightService) *AnalyticsHandler {
	return &AnalyticsHandler{
		insightService: insightService,
	}
}

// GetTrend handles GET /api/v1/analytics/trend?metric=...&window=...
func (h *AnalyticsHandler) GetTrend(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	metric := c.Query("metric")
	if metric == "" {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c),
			[]apierror.FieldError{{Field: "metric", Message: "is required", Code: "required"}}))
		return
	}

	window := queryInt(c, "window", 0)
	trend, err := h.insightService.GetTrend(c.Request.Context(), userID, metric, window)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetCorrelation handles GET /api/v1/analytics/correlation
func (h *AnalyticsHandler) GetCorrelation(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	metricA := c.Query("metric_a")
	metricB := c.Query("metric_b")

	var fieldErrors []apierror.FieldError
	if metricA == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "metric_a", Message: "is required", Code: "required"})
	}
	if metricB == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "metric_b", Message: "is required", Code: "required"})
	}
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrors))
		return
	}

	lagDays := queryInt(c, "lag_days", 0)
	days := queryInt(c, "days", 0)

	result, err := h.insightService.GetCorrelation(c.Request.Context(), userID, metricA, metricB, lagDays, days)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDeficit handles GET /api/v1/analytics/deficit?date=YYYY-MM-DD
func (h *AnalyticsHandler) GetDeficit(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	date, hasDate, err := queryDate(c, "date")
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
			err.Error(), "date must be formatted YYYY-MM-DD"))
		return
	}
	if !hasDate {
		date = time.Now().UTC()
	}

	result, err := h.insightService.GetDeficit(c.Request.Context(), userID, date)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActivityTrend handles GET /api/v1/analytics/activity-trend
func (h *AnalyticsHandler) GetActivityTrend(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	result, err := h.insightService.GetActivityTrend(c.Request.Context(), userID)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSleepActivity handles GET /api/v1/analytics/sleep-activity?days=...
func (h *AnalyticsHandler) GetSleepActivity(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	days := queryInt(c, "days", 0)
	narrative, err := h.insightService.GetSleepActivityNarrative(c.Request.Context(), userID, days)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"narrative": narrative})
}
