package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/batchcost/internal/costing"
	service "github.com/mamadbah2/batchcost/internal/service/batches"
)

const dateLayout = "2006-01-02"

// BatchHandler handles batch listing and calculation HTTP requests.
type BatchHandler struct {
	svc    service.API
	logger *zap.Logger
}

// NewBatchHandler constructs the HTTP handler adapter.
func NewBatchHandler(svc service.API, logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{svc: svc, logger: logger}
}

// List returns the batches whose work date falls inside the optional
// start/end query range (YYYY-MM-DD, inclusive).
func (h *BatchHandler) List(c *gin.Context) {
	start, ok := h.parseDateParam(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDateParam(c, "end")
	if !ok {
		return
	}

	summaries, err := h.svc.ListBatches(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("failed listing batches", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load batches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": summaries})
}

// Calculation runs the costing engine for one batch and returns the result
// without writing anything back.
func (h *BatchHandler) Calculation(c *gin.Context) {
	calc, err := h.svc.Calculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondCalcError(c, err)
		return
	}

	c.JSON(http.StatusOK, calc)
}

type recalculateRequest struct {
	WriteLabour bool `json:"write_labour"`
}

// Recalculate runs the costing engine and writes the derived metrics back
// into the external lists.
func (h *BatchHandler) Recalculate(c *gin.Context) {
	var req recalculateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid recalculate payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	calc, err := h.svc.Recalculate(c.Request.Context(), c.Param("id"), req.WriteLabour)
	if err != nil {
		h.respondCalcError(c, err)
		return
	}

	c.JSON(http.StatusOK, calc)
}

func (h *BatchHandler) respondCalcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
	case errors.Is(err, costing.ErrNoFieldsResolved):
		h.logger.Error("write-back resolved no fields", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "no output field matches the list schema"})
	default:
		h.logger.Error("calculation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "calculation failed"})
	}
}

func (h *BatchHandler) parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}

	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}
