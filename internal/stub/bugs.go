package stub

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) listBugs(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := sortedValues(s.bugs, func(a, b models.BugReport) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, paginate(rows, page, limit))
}

func (s *Server) createBug(c *gin.Context) {
	var input models.BugReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	bug, errStatus, errMsg := s.newBug(input, nil)
	if errMsg != "" {
		c.JSON(errStatus, gin.H{"detail": errMsg})
		return
	}
	c.JSON(http.StatusCreated, bug)
}

// createBugWithMedia accepts the report fields and one attachment as a
// single multipart form, storing the attachment like a regular upload.
func (s *Server) createBugWithMedia(c *gin.Context) {
	input := models.BugReportInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Severity:    c.PostForm("severity"),
	}

	var mediaURLs []string
	file, err := c.FormFile("media")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable media attachment"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable media attachment"})
			return
		}
		name := fmt.Sprintf("%s-%s", uuid.NewString(), file.Filename)
		s.mu.Lock()
		s.uploads[name] = data
		s.mu.Unlock()
		mediaURLs = append(mediaURLs, "/media/"+name)
	}

	bug, errStatus, errMsg := s.newBug(input, mediaURLs)
	if errMsg != "" {
		c.JSON(errStatus, gin.H{"detail": errMsg})
		return
	}
	c.JSON(http.StatusCreated, bug)
}

func (s *Server) newBug(input models.BugReportInput, mediaURLs []string) (models.BugReport, int, string) {
	if input.Title == "" {
		return models.BugReport{}, http.StatusUnprocessableEntity, "title is required"
	}
	bug := models.BugReport{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		Status:      "open",
		MediaURLs:   mediaURLs,
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	s.bugs[bug.ID] = bug
	s.mu.Unlock()
	return bug, 0, ""
}

func (s *Server) updateBug(c *gin.Context) {
	var input models.BugReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bug, ok := s.bugs[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "bug report not found"})
		return
	}
	if input.Title != "" {
		bug.Title = input.Title
	}
	if input.Description != "" {
		bug.Description = input.Description
	}
	if input.Severity != "" {
		bug.Severity = input.Severity
	}
	if input.Status != "" {
		bug.Status = input.Status
	}
	s.bugs[bug.ID] = bug
	c.JSON(http.StatusOK, bug)
}

func (s *Server) deleteBug(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.bugs[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "bug report not found"})
		return
	}
	delete(s.bugs, id)
	c.Status(http.StatusNoContent)
}
