package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"potrack/internal/repository"
	"potrack/internal/view"
)

type RecordsHandler struct {
	msgRepo *repository.MessageRepository
}

func NewRecordsHandler(msgRepo *repository.MessageRepository) *RecordsHandler {
	return &RecordsHandler{
		msgRepo: msgRepo,
	}
}

// GetRecords handles GET /records?q=
func (h *RecordsHandler) GetRecords(c *gin.Context) {
	records, err := h.msgRepo.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "failed to load records",
			"detail": err.Error(),
		})
		return
	}

	filtered := view.Filter(records, c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"count":       len(filtered),
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
		"items":       filtered,
	})
}
