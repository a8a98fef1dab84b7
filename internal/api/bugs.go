package api

import (
	"context"
	"fmt"
	"net/http"

	"homequest-admin/internal/cache"
	"homequest-admin/internal/models"
	"homequest-admin/internal/transport"
)

var (
	epListBugs           = register(Endpoint{Name: "listBugs", Method: http.MethodGet, Path: "/bugs/", Kind: KindQuery, Entity: EntityBug, List: true})
	epGetBug             = register(Endpoint{Name: "getBug", Method: http.MethodGet, Path: "/bugs/%s", Kind: KindQuery, Entity: EntityBug})
	epCreateBug          = register(Endpoint{Name: "createBug", Method: http.MethodPost, Path: "/bugs/", Kind: KindMutation, Entity: EntityBug, Op: OpCreate})
	epCreateBugWithMedia = register(Endpoint{Name: "createBugWithMedia", Method: http.MethodPost, Path: "/bugs/with-media/", Kind: KindMutation, Entity: EntityBug, Op: OpCreate})
	epUpdateBug          = register(Endpoint{Name: "updateBug", Method: http.MethodPut, Path: "/bugs/%s", Kind: KindMutation, Entity: EntityBug, Op: OpUpdate})
	epDeleteBug          = register(Endpoint{Name: "deleteBug", Method: http.MethodDelete, Path: "/bugs/%s", Kind: KindMutation, Entity: EntityBug, Op: OpDelete})
)

// BugsService covers bug report intake and triage.
type BugsService struct {
	c *Client
}

func (c *Client) Bugs() *BugsService {
	return &BugsService{c: c}
}

func (s *BugsService) List(params models.ListParams) *QueryHandle[models.Page[models.BugReport]] {
	req := &transport.Request{Method: epListBugs.Method, Path: epListBugs.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListBugs, params, req, func(page models.Page[models.BugReport]) []cache.Tag {
		return listProvides(EntityBug, page, func(b models.BugReport) string { return b.ID })
	})
}

func (s *BugsService) Get(id string) *QueryHandle[models.BugReport] {
	req := &transport.Request{Method: epGetBug.Method, Path: fmt.Sprintf(epGetBug.Path, id)}
	return subscribeQuery(s.c, epGetBug, id, req, func(models.BugReport) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityBug, id)}
	})
}

func (s *BugsService) Create(ctx context.Context, input models.BugReportInput) (models.BugReport, error) {
	req := &transport.Request{Method: epCreateBug.Method, Path: epCreateBug.Path, Body: input}
	return runMutation[models.BugReport](ctx, s.c, req, epCreateBug.WriteInvalidates(""))
}

// CreateWithMedia submits a bug report together with an attachment as
// one multipart request.
func (s *BugsService) CreateWithMedia(ctx context.Context, input models.BugReportInput, fileName string, fileData []byte) (models.BugReport, error) {
	req := &transport.Request{
		Method: epCreateBugWithMedia.Method,
		Path:   epCreateBugWithMedia.Path,
		Multipart: &transport.Multipart{
			Fields: map[string]string{
				"title":       input.Title,
				"description": input.Description,
				"severity":    input.Severity,
			},
			FileField: "media",
			FileName:  fileName,
			FileData:  fileData,
		},
	}
	return runMutation[models.BugReport](ctx, s.c, req, epCreateBugWithMedia.WriteInvalidates(""))
}

func (s *BugsService) Update(ctx context.Context, id string, input models.BugReportInput) (models.BugReport, error) {
	req := &transport.Request{Method: epUpdateBug.Method, Path: fmt.Sprintf(epUpdateBug.Path, id), Body: input}
	return runMutation[models.BugReport](ctx, s.c, req, epUpdateBug.WriteInvalidates(id))
}

func (s *BugsService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteBug.Method, Path: fmt.Sprintf(epDeleteBug.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteBug.WriteInvalidates(id))
	return err
}
