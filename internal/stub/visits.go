package stub

import (
	"net/http"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) listVisits(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := sortedValues(s.visits, func(a, b models.Visit) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, paginate(rows, page, limit))
}

func (s *Server) scheduleVisit(c *gin.Context) {
	var input models.VisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.PropertyID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "property_id is required"})
		return
	}

	v := models.Visit{
		ID:          uuid.NewString(),
		PropertyID:  input.PropertyID,
		Status:      "pending",
		ScheduledAt: input.ScheduledAt,
		Note:        input.Note,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.visits[v.ID] = v
	s.mu.Unlock()
	c.JSON(http.StatusCreated, v)
}

// visitAction transitions a visit into the given status.
func (s *Server) visitAction(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		v, ok := s.visits[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "visit not found"})
			return
		}
		v.Status = status
		s.visits[v.ID] = v
		c.JSON(http.StatusOK, v)
	}
}
