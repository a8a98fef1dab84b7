package stub

import (
	"net/http"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) listPages(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := sortedValues(s.pages, func(a, b models.StaticPage) bool {
		return a.UniqueName < b.UniqueName
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, paginate(rows, page, limit))
}

func (s *Server) getPage(c *gin.Context) {
	s.mu.Lock()
	p, ok := s.pages[c.Param("name")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "page not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createPage(c *gin.Context) {
	var body struct {
		UniqueName string `json:"unique_name"`
		models.StaticPageInput
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if body.UniqueName == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "unique_name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pages[body.UniqueName]; exists {
		c.JSON(http.StatusConflict, gin.H{"detail": "page with this unique_name already exists"})
		return
	}
	p := models.StaticPage{
		UniqueName: body.UniqueName,
		Title:      body.Title,
		Content:    body.Content,
		UpdatedAt:  time.Now().UTC(),
	}
	s.pages[p.UniqueName] = p
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updatePage(c *gin.Context) {
	var input models.StaticPageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "page not found"})
		return
	}
	if input.Title != "" {
		p.Title = input.Title
	}
	if input.Content != "" {
		p.Content = input.Content
	}
	p.UpdatedAt = time.Now().UTC()
	s.pages[p.UniqueName] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) deletePage(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := c.Param("name")
	if _, ok := s.pages[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "page not found"})
		return
	}
	delete(s.pages, name)
	c.Status(http.StatusNoContent)
}
