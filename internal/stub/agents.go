package stub

import (
	"net/http"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The agent endpoints predate the list-envelope rework and still serve
// the legacy {results, count} shape. The client's Page adapter accepts
// both, so the stub keeps the mismatch on purpose.
func (s *Server) listAgents(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := sortedValues(s.agents, func(a, b models.Agent) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	s.mu.Unlock()

	total := len(rows)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	c.JSON(http.StatusOK, gin.H{"results": rows[start:end], "count": total})
}

func (s *Server) getAgent(c *gin.Context) {
	s.mu.Lock()
	a, ok := s.agents[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) createAgent(c *gin.Context) {
	var input models.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.FullName == "" || input.Phone == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "full_name and phone are required"})
		return
	}

	a := models.Agent{
		ID:        uuid.NewString(),
		FullName:  input.FullName,
		Email:     input.Email,
		Phone:     input.Phone,
		Agency:    input.Agency,
		LicenseNo: input.LicenseNo,
		PhotoURL:  input.PhotoURL,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.agents[a.ID] = a
	s.mu.Unlock()
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateAgent(c *gin.Context) {
	var input models.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "agent not found"})
		return
	}
	if input.FullName != "" {
		a.FullName = input.FullName
	}
	if input.Email != "" {
		a.Email = input.Email
	}
	if input.Phone != "" {
		a.Phone = input.Phone
	}
	if input.Agency != "" {
		a.Agency = input.Agency
	}
	if input.PhotoURL != "" {
		a.PhotoURL = input.PhotoURL
	}
	s.agents[a.ID] = a
	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteAgent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.agents[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "agent not found"})
		return
	}
	delete(s.agents, id)
	c.Status(http.StatusNoContent)
}
