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
	epListReviews  = register(Endpoint{Name: "listReviews", Method: http.MethodGet, Path: "/reviews/", Kind: KindQuery, Entity: EntityReview, List: true})
	epDeleteReview = register(Endpoint{Name: "deleteReview", Method: http.MethodDelete, Path: "/reviews/%s", Kind: KindMutation, Entity: EntityReview, Op: OpDelete})
)

// ReviewsService is moderation-only: admins read and remove reviews,
// they never author them.
type ReviewsService struct {
	c *Client
}

func (c *Client) Reviews() *ReviewsService {
	return &ReviewsService{c: c}
}

func (s *ReviewsService) List(params models.ListParams) *QueryHandle[models.Page[models.Review]] {
	req := &transport.Request{Method: epListReviews.Method, Path: epListReviews.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListReviews, params, req, func(page models.Page[models.Review]) []cache.Tag {
		return listProvides(EntityReview, page, func(r models.Review) string { return r.ID })
	})
}

func (s *ReviewsService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteReview.Method, Path: fmt.Sprintf(epDeleteReview.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteReview.WriteInvalidates(id))
	return err
}
