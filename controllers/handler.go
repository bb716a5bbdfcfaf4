package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"github.com/IhorDund/Invenlytics/analytics"
	"github.com/IhorDund/Invenlytics/ledger"
	"github.com/IhorDund/Invenlytics/models"
	"github.com/IhorDund/Invenlytics/reports"
)

const dateLayout = "2006-01-02"

// Handler wires the HTTP layer to the core services. The database handle is
// passed in once at construction; nothing here keeps global state.
type Handler struct {
	Ledger    *ledger.Service
	Reports   *reports.Service
	Analytics *analytics.Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Ledger:    ledger.NewService(db),
		Reports:   reports.NewService(db),
		Analytics: analytics.NewService(db),
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, analytics.ErrEmptyResult):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidArgument), errors.Is(err, ledger.ErrExcessReturn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseDate accepts YYYY-MM-DD; an empty value yields the zero time so the
// ledger can default it.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

// parseRange resolves optional start/end query values, falling back to the
// open-ended reporting range.
func parseRange(startValue, endValue string) (time.Time, time.Time, error) {
	start := reports.RangeStart
	end := reports.RangeEnd

	if startValue != "" {
		parsed, err := time.Parse(dateLayout, startValue)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if endValue != "" {
		parsed, err := time.Parse(dateLayout, endValue)
		if err != nil {
			return start, end, err
		}
		end = parsed
	}
	return start, end, nil
}
