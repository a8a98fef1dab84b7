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
	epListUpdates  = register(Endpoint{Name: "listAppUpdates", Method: http.MethodGet, Path: "/updates/", Kind: KindQuery, Entity: EntityAppUpdate, List: true})
	epCreateUpdate = register(Endpoint{Name: "createAppUpdate", Method: http.MethodPost, Path: "/updates/", Kind: KindMutation, Entity: EntityAppUpdate, Op: OpCreate})
	epUpdateUpdate = register(Endpoint{Name: "updateAppUpdate", Method: http.MethodPut, Path: "/updates/%s", Kind: KindMutation, Entity: EntityAppUpdate, Op: OpUpdate})
	epDeleteUpdate = register(Endpoint{Name: "deleteAppUpdate", Method: http.MethodDelete, Path: "/updates/%s", Kind: KindMutation, Entity: EntityAppUpdate, Op: OpDelete})
)

// UpdatesService manages published mobile app release entries.
type UpdatesService struct {
	c *Client
}

func (c *Client) Updates() *UpdatesService {
	return &UpdatesService{c: c}
}

func (s *UpdatesService) List(params models.ListParams) *QueryHandle[models.Page[models.AppUpdate]] {
	req := &transport.Request{Method: epListUpdates.Method, Path: epListUpdates.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListUpdates, params, req, func(page models.Page[models.AppUpdate]) []cache.Tag {
		return listProvides(EntityAppUpdate, page, func(u models.AppUpdate) string { return u.ID })
	})
}

func (s *UpdatesService) Create(ctx context.Context, input models.AppUpdateInput) (models.AppUpdate, error) {
	req := &transport.Request{Method: epCreateUpdate.Method, Path: epCreateUpdate.Path, Body: input}
	return runMutation[models.AppUpdate](ctx, s.c, req, epCreateUpdate.WriteInvalidates(""))
}

func (s *UpdatesService) Update(ctx context.Context, id string, input models.AppUpdateInput) (models.AppUpdate, error) {
	req := &transport.Request{Method: epUpdateUpdate.Method, Path: fmt.Sprintf(epUpdateUpdate.Path, id), Body: input}
	return runMutation[models.AppUpdate](ctx, s.c, req, epUpdateUpdate.WriteInvalidates(id))
}

func (s *UpdatesService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteUpdate.Method, Path: fmt.Sprintf(epDeleteUpdate.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteUpdate.WriteInvalidates(id))
	return err
}
