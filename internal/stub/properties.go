package stub

import (
	"net/http"
	"strings"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) listProperties(c *gin.Context) {
	page, limit := pageParams(c)
	search := strings.ToLower(c.Query("search"))
	city := c.Query("city")
	status := c.Query("status")

	s.mu.Lock()
	rows := sortedValues(s.properties, func(a, b models.Property) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	s.mu.Unlock()

	filtered := rows[:0]
	for _, p := range rows {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if city != "" && p.City != city {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		filtered = append(filtered, p)
	}
	c.JSON(http.StatusOK, paginate(filtered, page, limit))
}

func (s *Server) getProperty(c *gin.Context) {
	s.mu.Lock()
	p, ok := s.properties[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProperty(c *gin.Context) {
	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if input.Title == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "title is required"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "price must not be negative"})
		return
	}

	now := time.Now().UTC()
	p := models.Property{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Currency:     input.Currency,
		PropertyType: input.PropertyType,
		Status:       input.Status,
		City:         input.City,
		Address:      input.Address,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		AgentID:      input.AgentID,
		Images:       input.Images,
		IsFeatured:   input.IsFeatured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Status == "" {
		p.Status = "available"
	}

	s.mu.Lock()
	s.properties[p.ID] = p
	s.mu.Unlock()
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProperty(c *gin.Context) {
	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "property not found"})
		return
	}
	if input.Title != "" {
		p.Title = input.Title
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.Price > 0 {
		p.Price = input.Price
	}
	if input.Status != "" {
		p.Status = input.Status
	}
	if input.City != "" {
		p.City = input.City
	}
	if input.Address != "" {
		p.Address = input.Address
	}
	if input.AgentID != "" {
		p.AgentID = input.AgentID
	}
	p.UpdatedAt = time.Now().UTC()
	s.properties[p.ID] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProperty(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.properties[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "property not found"})
		return
	}
	delete(s.properties, id)
	c.Status(http.StatusNoContent)
}
