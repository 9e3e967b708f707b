// internal/handlers/history.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gudangkita/inventory-backend/internal/projector"
	"github.com/gudangkita/inventory-backend/internal/utils"
)

const dateLayout = "2006-01-02"

var errInvalidDays = errors.New("days must be a positive integer")

type HistoryHandler struct {
	view *projector.HistoryView
}

func NewHistoryHandler(view *projector.HistoryView) *HistoryHandler {
	return &HistoryHandler{view: view}
}

// GET /history
//
// Range selection re-scopes the live view (releasing the previous
// subscription first); without range params the current scope is kept.
// `q` applies the free-text filter across the displayed fields.
//
//	?days=7              rolling quick range
//	?date=2026-08-28     one calendar day
//	?start=...&end=...   custom range (inclusive days)
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	rng, ok, err := parseRange(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid date range", err.Error())
		return
	}
	if ok {
		if err := h.view.SetRange(c.Request.Context(), rng); err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
	}

	h.view.SetSearch(c.Query("q"))

	params := utils.GetPaginationParams(c)
	rows := h.view.Rows()
	page, total := utils.PaginateSlice(rows, params)

	active := h.view.Range()
	utils.SetPaginationHeaders(c, utils.CreatePaginationResult(page, total, params))
	utils.SuccessResponseWithMeta(c, page, gin.H{
		"range": gin.H{
			"start": active.Start,
			"end":   active.End,
		},
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

func parseRange(c *gin.Context) (projector.TimeRange, bool, error) {
	if days := c.Query("days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return projector.TimeRange{}, false, errInvalidDays
		}
		return projector.LastDays(n), true, nil
	}

	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return projector.TimeRange{}, false, err
		}
		return projector.SingleDay(day), true, nil
	}

	start, end := c.Query("start"), c.Query("end")
	if start == "" && end == "" {
		return projector.TimeRange{}, false, nil
	}
	s, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return projector.TimeRange{}, false, err
	}
	e, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return projector.TimeRange{}, false, err
	}
	return projector.TimeRange{
		Start: s,
		End:   e.Add(24*time.Hour - time.Nanosecond),
	}, true, nil
}
