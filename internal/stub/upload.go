package stub

import (
	"fmt"
	"io"
	"net/http"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file field is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable file"})
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable file"})
		return
	}

	name := fmt.Sprintf("%s-%s", uuid.NewString(), file.Filename)
	s.mu.Lock()
	s.uploads[name] = data
	s.mu.Unlock()

	c.JSON(http.StatusCreated, models.UploadResult{
		URL:      "/media/" + name,
		FileName: file.Filename,
		Size:     int64(len(data)),
	})
}
