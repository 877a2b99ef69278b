package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/normalize"
	"github.com/pulseboard/backend/internal/service"
)

type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
	}
}

// Ingest handles POST /api/v1/ingest/:source
func (h *IngestHandler) Ingest(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	source := c.Param("source")
	if !normalize.KnownSource(source) {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"unrecognized source '"+source+"'", "Unknown data source"))
		return
	}

	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	resp, err := h.ingestService.Ingest(c.Request.Context(), userID, source, req.Records)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListActivities handles GET /api/v1/activities
func (h *IngestHandler) ListActivities(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	start, hasStart, err := queryDate(c, "start_date")
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
			err.Error(), "start_date must be formatted YYYY-MM-DD"))
		return
	}
	end, hasEnd, err := queryDate(c, "end_date")
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c),
			err.Error(), "end_date must be formatted YYYY-MM-DD"))
		return
	}

	var activities []models.NormalizedActivity
	if hasStart && hasEnd {
		activities, err = h.ingestService.GetTimelineRange(c.Request.Context(), userID, start, end.AddDate(0, 0, 1))
	} else {
		limit := queryInt(c, "limit", 50)
		offset := queryInt(c, "offset", 0)
		activities, err = h.ingestService.GetTimeline(c.Request.Context(), userID, limit, offset)
	}
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	if activities == nil {
		activities = []models.NormalizedActivity{}
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities, "count": len(activities)})
}
