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
	epListPages  = register(Endpoint{Name: "listPages", Method: http.MethodGet, Path: "/pages/", Kind: KindQuery, Entity: EntityPage, List: true})
	epGetPage    = register(Endpoint{Name: "getPage", Method: http.MethodGet, Path: "/pages/%s", Kind: KindQuery, Entity: EntityPage})
	epCreatePage = register(Endpoint{Name: "createPage", Method: http.MethodPost, Path: "/pages/", Kind: KindMutation, Entity: EntityPage, Op: OpCreate})
	epUpdatePage = register(Endpoint{Name: "updatePage", Method: http.MethodPut, Path: "/pages/%s", Kind: KindMutation, Entity: EntityPage, Op: OpUpdate})
	epDeletePage = register(Endpoint{Name: "deletePage", Method: http.MethodDelete, Path: "/pages/%s", Kind: KindMutation, Entity: EntityPage, Op: OpDelete})
)

// PagesService manages static content pages. Pages are addressed by
// unique name, which doubles as the cache item id.
type PagesService struct {
	c *Client
}

func (c *Client) Pages() *PagesService {
	return &PagesService{c: c}
}

func (s *PagesService) List(params models.ListParams) *QueryHandle[models.Page[models.StaticPage]] {
	req := &transport.Request{Method: epListPages.Method, Path: epListPages.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListPages, params, req, func(page models.Page[models.StaticPage]) []cache.Tag {
		return listProvides(EntityPage, page, func(p models.StaticPage) string { return p.UniqueName })
	})
}

func (s *PagesService) Get(uniqueName string) *QueryHandle[models.StaticPage] {
	req := &transport.Request{Method: epGetPage.Method, Path: fmt.Sprintf(epGetPage.Path, uniqueName)}
	return subscribeQuery(s.c, epGetPage, uniqueName, req, func(models.StaticPage) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityPage, uniqueName)}
	})
}

func (s *PagesService) Create(ctx context.Context, uniqueName string, input models.StaticPageInput) (models.StaticPage, error) {
	body := struct {
		UniqueName string `json:"unique_name"`
		models.StaticPageInput
	}{UniqueName: uniqueName, StaticPageInput: input}
	req := &transport.Request{Method: epCreatePage.Method, Path: epCreatePage.Path, Body: body}
	return runMutation[models.StaticPage](ctx, s.c, req, epCreatePage.WriteInvalidates(""))
}

func (s *PagesService) Update(ctx context.Context, uniqueName string, input models.StaticPageInput) (models.StaticPage, error) {
	req := &transport.Request{Method: epUpdatePage.Method, Path: fmt.Sprintf(epUpdatePage.Path, uniqueName), Body: input}
	return runMutation[models.StaticPage](ctx, s.c, req, epUpdatePage.WriteInvalidates(uniqueName))
}

func (s *PagesService) Delete(ctx context.Context, uniqueName string) error {
	req := &transport.Request{Method: epDeletePage.Method, Path: fmt.Sprintf(epDeletePage.Path, uniqueName)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeletePage.WriteInvalidates(uniqueName))
	return err
}
