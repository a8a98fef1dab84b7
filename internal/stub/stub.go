// Package stub is an in-memory implementation of the admin REST
// contract, used as the development backend and as the target for the
// client's end-to-end tests. It keeps everything in maps under one
// mutex; nothing survives a restart.
package stub

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"homequest-admin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed admin credentials for local development.
const (
	SeedAdminPhone    = "9800000000"
	SeedAdminPassword = "admin1234"
)

type account struct {
	user         models.User
	passwordHash []byte
}

// Server holds the in-memory state behind the stub REST API.
type Server struct {
	mu         sync.Mutex
	secret     string
	accounts   map[string]*account // keyed by phone
	properties map[string]models.Property
	agents     map[string]models.Agent
	bugs       map[string]models.BugReport
	pages      map[string]models.StaticPage // keyed by unique_name
	visits     map[string]models.Visit
	updates    map[string]models.AppUpdate
	uploads    map[string][]byte // keyed by served file name
}

// NewServer creates a stub server with the seeded admin account.
// The secret signs issued tokens; tests may pass any non-empty string.
func NewServer(secret string) *Server {
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	s := &Server{
		secret:     secret,
		accounts:   make(map[string]*account),
		properties: make(map[string]models.Property),
		agents:     make(map[string]models.Agent),
		bugs:       make(map[string]models.BugReport),
		pages:      make(map[string]models.StaticPage),
		visits:     make(map[string]models.Visit),
		updates:    make(map[string]models.AppUpdate),
		uploads:    make(map[string][]byte),
	}
	s.accounts[SeedAdminPhone] = &account{
		user: models.User{
			ID:        uuid.NewString(),
			FullName:  "Seed Admin",
			Phone:     SeedAdminPhone,
			Role:      "admin",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	return s
}

// Router builds the gin engine with all stub routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/auth/login/", s.login)

	authed := r.Group("/")
	authed.Use(s.authRequired())
	{
		authed.GET("/properties/", s.listProperties)
		authed.GET("/properties/:id", s.getProperty)
		authed.POST("/properties/", s.createProperty)
		authed.PUT("/properties/:id", s.updateProperty)
		authed.DELETE("/properties/:id", s.deleteProperty)

		authed.GET("/agents/", s.listAgents)
		authed.GET("/agents/:id", s.getAgent)
		authed.POST("/agents/", s.createAgent)
		authed.PUT("/agents/:id", s.updateAgent)
		authed.DELETE("/agents/:id", s.deleteAgent)

		authed.GET("/bugs/", s.listBugs)
		authed.POST("/bugs/", s.createBug)
		authed.POST("/bugs/with-media/", s.createBugWithMedia)
		authed.PUT("/bugs/:id", s.updateBug)
		authed.DELETE("/bugs/:id", s.deleteBug)

		authed.GET("/pages/", s.listPages)
		authed.GET("/pages/:name", s.getPage)
		authed.POST("/pages/", s.createPage)
		authed.PUT("/pages/:name", s.updatePage)
		authed.DELETE("/pages/:name", s.deletePage)

		authed.GET("/visits/", s.listVisits)
		authed.POST("/visits/", s.scheduleVisit)
		authed.POST("/visits/:id/confirm/", s.visitAction("confirmed"))
		authed.POST("/visits/:id/cancel/", s.visitAction("cancelled"))
		authed.POST("/visits/:id/complete/", s.visitAction("completed"))

		authed.GET("/updates/", s.listUpdates)
		authed.POST("/updates/", s.createUpdate)

		authed.POST("/upload/", s.upload)
	}
	return r
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// paginate slices rows into the modern list response shape.
func paginate[T any](rows []T, page, limit int) gin.H {
	total := len(rows)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return gin.H{
		"items":       rows[start:end],
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": totalPages,
		"has_next":    page < totalPages,
		"has_prev":    page > 1 && total > 0,
	}
}

// sortedValues returns map values in a stable order so pagination is
// deterministic across requests.
func sortedValues[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
