package stub

import (
	"net/http"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) listUpdates(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := sortedValues(s.updates, func(a, b models.AppUpdate) bool {
		return a.ReleasedAt.After(b.ReleasedAt)
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, paginate(rows, page, limit))
}

func (s *Server) createUpdate(c *gin.Context) {
	var input models.AppUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.Version == "" || input.Platform == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "version and platform are required"})
		return
	}

	u := models.AppUpdate{
		ID:         uuid.NewString(),
		Version:    input.Version,
		Platform:   input.Platform,
		Notes:      input.Notes,
		ReleasedAt: time.Now().UTC(),
	}
	if input.IsMandatory != nil {
		u.IsMandatory = *input.IsMandatory
	}

	s.mu.Lock()
	s.updates[u.ID] = u
	s.mu.Unlock()
	c.JSON(http.StatusCreated, u)
}
