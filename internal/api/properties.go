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
	epListProperties = register(Endpoint{Name: "listProperties", Method: http.MethodGet, Path: "/properties/", Kind: KindQuery, Entity: EntityProperty, List: true})
	epGetProperty    = register(Endpoint{Name: "getProperty", Method: http.MethodGet, Path: "/properties/%s", Kind: KindQuery, Entity: EntityProperty})
	epCreateProperty = register(Endpoint{Name: "createProperty", Method: http.MethodPost, Path: "/properties/", Kind: KindMutation, Entity: EntityProperty, Op: OpCreate})
	epUpdateProperty = register(Endpoint{Name: "updateProperty", Method: http.MethodPut, Path: "/properties/%s", Kind: KindMutation, Entity: EntityProperty, Op: OpUpdate})
	epDeleteProperty = register(Endpoint{Name: "deleteProperty", Method: http.MethodDelete, Path: "/properties/%s", Kind: KindMutation, Entity: EntityProperty, Op: OpDelete})
)

// PropertiesService covers the property CRUD screens.
type PropertiesService struct {
	c *Client
}

func (c *Client) Properties() *PropertiesService {
	return &PropertiesService{c: c}
}

// List subscribes to the filtered, paginated property list.
func (s *PropertiesService) List(filter models.PropertyFilter) *QueryHandle[models.Page[models.Property]] {
	req := &transport.Request{Method: epListProperties.Method, Path: epListProperties.Path, Params: filter.Values()}
	return subscribeQuery(s.c, epListProperties, filter, req, func(page models.Page[models.Property]) []cache.Tag {
		return listProvides(EntityProperty, page, func(p models.Property) string { return p.ID })
	})
}

// Get subscribes to one property record.
func (s *PropertiesService) Get(id string) *QueryHandle[models.Property] {
	req := &transport.Request{Method: epGetProperty.Method, Path: fmt.Sprintf(epGetProperty.Path, id)}
	return subscribeQuery(s.c, epGetProperty, id, req, func(models.Property) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityProperty, id)}
	})
}

func (s *PropertiesService) Create(ctx context.Context, input models.PropertyInput) (models.Property, error) {
	req := &transport.Request{Method: epCreateProperty.Method, Path: epCreateProperty.Path, Body: input}
	return runMutation[models.Property](ctx, s.c, req, epCreateProperty.WriteInvalidates(""))
}

func (s *PropertiesService) Update(ctx context.Context, id string, input models.PropertyInput) (models.Property, error) {
	req := &transport.Request{Method: epUpdateProperty.Method, Path: fmt.Sprintf(epUpdateProperty.Path, id), Body: input}
	return runMutation[models.Property](ctx, s.c, req, epUpdateProperty.WriteInvalidates(id))
}

func (s *PropertiesService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteProperty.Method, Path: fmt.Sprintf(epDeleteProperty.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteProperty.WriteInvalidates(id))
	return err
}
