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
	epListUsers  = register(Endpoint{Name: "listUsers", Method: http.MethodGet, Path: "/users/", Kind: KindQuery, Entity: EntityUser, List: true})
	epGetUser    = register(Endpoint{Name: "getUser", Method: http.MethodGet, Path: "/users/%s", Kind: KindQuery, Entity: EntityUser})
	epCreateUser = register(Endpoint{Name: "createUser", Method: http.MethodPost, Path: "/users/", Kind: KindMutation, Entity: EntityUser, Op: OpCreate})
	epUpdateUser = register(Endpoint{Name: "updateUser", Method: http.MethodPut, Path: "/users/%s", Kind: KindMutation, Entity: EntityUser, Op: OpUpdate})
	epDeleteUser = register(Endpoint{Name: "deleteUser", Method: http.MethodDelete, Path: "/users/%s", Kind: KindMutation, Entity: EntityUser, Op: OpDelete})
)

// UsersService covers the user management screens.
type UsersService struct {
	c *Client
}

func (c *Client) Users() *UsersService {
	return &UsersService{c: c}
}

func (s *UsersService) List(filter models.UserFilter) *QueryHandle[models.Page[models.User]] {
	req := &transport.Request{Method: epListUsers.Method, Path: epListUsers.Path, Params: filter.Values()}
	return subscribeQuery(s.c, epListUsers, filter, req, func(page models.Page[models.User]) []cache.Tag {
		return listProvides(EntityUser, page, func(u models.User) string { return u.ID })
	})
}

func (s *UsersService) Get(id string) *QueryHandle[models.User] {
	req := &transport.Request{Method: epGetUser.Method, Path: fmt.Sprintf(epGetUser.Path, id)}
	return subscribeQuery(s.c, epGetUser, id, req, func(models.User) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityUser, id)}
	})
}

func (s *UsersService) Create(ctx context.Context, input models.UserInput) (models.User, error) {
	req := &transport.Request{Method: epCreateUser.Method, Path: epCreateUser.Path, Body: input}
	return runMutation[models.User](ctx, s.c, req, epCreateUser.WriteInvalidates(""))
}

func (s *UsersService) Update(ctx context.Context, id string, input models.UserInput) (models.User, error) {
	req := &transport.Request{Method: epUpdateUser.Method, Path: fmt.Sprintf(epUpdateUser.Path, id), Body: input}
	return runMutation[models.User](ctx, s.c, req, epUpdateUser.WriteInvalidates(id))
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteUser.Method, Path: fmt.Sprintf(epDeleteUser.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteUser.WriteInvalidates(id))
	return err
}
