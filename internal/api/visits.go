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
	epListVisits    = register(Endpoint{Name: "listVisits", Method: http.MethodGet, Path: "/visits/", Kind: KindQuery, Entity: EntityVisit, List: true})
	epScheduleVisit = register(Endpoint{Name: "scheduleVisit", Method: http.MethodPost, Path: "/visits/", Kind: KindMutation, Entity: EntityVisit, Op: OpCreate})
	epConfirmVisit  = register(Endpoint{Name: "confirmVisit", Method: http.MethodPost, Path: "/visits/%s/confirm/", Kind: KindMutation, Entity: EntityVisit, Op: OpUpdate})
	epCancelVisit   = register(Endpoint{Name: "cancelVisit", Method: http.MethodPost, Path: "/visits/%s/cancel/", Kind: KindMutation, Entity: EntityVisit, Op: OpUpdate})
	epCompleteVisit = register(Endpoint{Name: "completeVisit", Method: http.MethodPost, Path: "/visits/%s/complete/", Kind: KindMutation, Entity: EntityVisit, Op: OpUpdate})
)

// VisitsService covers the visit scheduling lifecycle.
type VisitsService struct {
	c *Client
}

func (c *Client) Visits() *VisitsService {
	return &VisitsService{c: c}
}

func (s *VisitsService) List(params models.ListParams) *QueryHandle[models.Page[models.Visit]] {
	req := &transport.Request{Method: epListVisits.Method, Path: epListVisits.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListVisits, params, req, func(page models.Page[models.Visit]) []cache.Tag {
		return listProvides(EntityVisit, page, func(v models.Visit) string { return v.ID })
	})
}

func (s *VisitsService) Schedule(ctx context.Context, input models.VisitInput) (models.Visit, error) {
	req := &transport.Request{Method: epScheduleVisit.Method, Path: epScheduleVisit.Path, Body: input}
	return runMutation[models.Visit](ctx, s.c, req, epScheduleVisit.WriteInvalidates(""))
}

func (s *VisitsService) Confirm(ctx context.Context, id string) (models.Visit, error) {
	return s.action(ctx, epConfirmVisit, id)
}

func (s *VisitsService) Cancel(ctx context.Context, id string) (models.Visit, error) {
	return s.action(ctx, epCancelVisit, id)
}

func (s *VisitsService) Complete(ctx context.Context, id string) (models.Visit, error) {
	return s.action(ctx, epCompleteVisit, id)
}

func (s *VisitsService) action(ctx context.Context, ep Endpoint, id string) (models.Visit, error) {
	req := &transport.Request{Method: ep.Method, Path: fmt.Sprintf(ep.Path, id)}
	return runMutation[models.Visit](ctx, s.c, req, ep.WriteInvalidates(id))
}
