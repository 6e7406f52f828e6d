package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"potrack/internal/repository"
	"potrack/internal/view"
)

type ViewsHandler struct {
	msgRepo *repository.MessageRepository
}

func NewViewsHandler(msgRepo *repository.MessageRepository) *ViewsHandler {
	return &ViewsHandler{
		msgRepo: msgRepo,
	}
}

// GetMonths handles GET /views/months?q=
func (h *ViewsHandler) GetMonths(c *gin.Context) {
	records, err := h.msgRepo.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "failed to load records",
			"detail": err.Error(),
		})
		return
	}

	buckets := view.MonthBuckets(view.Filter(records, c.Query("q")))

	c.JSON(http.StatusOK, gin.H{
		"buckets": buckets,
	})
}

// GetSupportStats handles GET /views/support?q=&year=&month=
//
// Absent year/month parameters are seeded from the latest parseable
// period in the filtered set. An explicit value, including "All", is
// honored as-is and never re-seeded.
func (h *ViewsHandler) GetSupportStats(c *gin.Context) {
	records, err := h.msgRepo.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "failed to load records",
			"detail": err.Error(),
		})
		return
	}

	filtered := view.Filter(records, c.Query("q"))

	year := c.Query("year")
	month := c.Query("month")
	if year == "" || month == "" {
		latestYear, latestMonth := view.LatestPeriod(filtered)
		if year == "" {
			year = latestYear
		}
		if month == "" {
			month = latestMonth
		}
	}

	rows := view.SupportStats(filtered, year, month)

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"rows":  rows,
	})
}
