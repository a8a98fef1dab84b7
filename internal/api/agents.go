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
	epListAgents  = register(Endpoint{Name: "listAgents", Method: http.MethodGet, Path: "/agents/", Kind: KindQuery, Entity: EntityAgent, List: true})
	epGetAgent    = register(Endpoint{Name: "getAgent", Method: http.MethodGet, Path: "/agents/%s", Kind: KindQuery, Entity: EntityAgent})
	epCreateAgent = register(Endpoint{Name: "createAgent", Method: http.MethodPost, Path: "/agents/", Kind: KindMutation, Entity: EntityAgent, Op: OpCreate})
	epUpdateAgent = register(Endpoint{Name: "updateAgent", Method: http.MethodPut, Path: "/agents/%s", Kind: KindMutation, Entity: EntityAgent, Op: OpUpdate})
	epDeleteAgent = register(Endpoint{Name: "deleteAgent", Method: http.MethodDelete, Path: "/agents/%s", Kind: KindMutation, Entity: EntityAgent, Op: OpDelete})
)

// AgentsService covers the agent CRUD screens (admin only).
type AgentsService struct {
	c *Client
}

func (c *Client) Agents() *AgentsService {
	return &AgentsService{c: c}
}

func (s *AgentsService) List(filter models.AgentFilter) *QueryHandle[models.Page[models.Agent]] {
	req := &transport.Request{Method: epListAgents.Method, Path: epListAgents.Path, Params: filter.Values()}
	return subscribeQuery(s.c, epListAgents, filter, req, func(page models.Page[models.Agent]) []cache.Tag {
		return listProvides(EntityAgent, page, func(a models.Agent) string { return a.ID })
	})
}

func (s *AgentsService) Get(id string) *QueryHandle[models.Agent] {
	req := &transport.Request{Method: epGetAgent.Method, Path: fmt.Sprintf(epGetAgent.Path, id)}
	return subscribeQuery(s.c, epGetAgent, id, req, func(models.Agent) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityAgent, id)}
	})
}

func (s *AgentsService) Create(ctx context.Context, input models.AgentInput) (models.Agent, error) {
	req := &transport.Request{Method: epCreateAgent.Method, Path: epCreateAgent.Path, Body: input}
	return runMutation[models.Agent](ctx, s.c, req, epCreateAgent.WriteInvalidates(""))
}

func (s *AgentsService) Update(ctx context.Context, id string, input models.AgentInput) (models.Agent, error) {
	req := &transport.Request{Method: epUpdateAgent.Method, Path: fmt.Sprintf(epUpdateAgent.Path, id), Body: input}
	return runMutation[models.Agent](ctx, s.c, req, epUpdateAgent.WriteInvalidates(id))
}

func (s *AgentsService) Delete(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteAgent.Method, Path: fmt.Sprintf(epDeleteAgent.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteAgent.WriteInvalidates(id))
	return err
}
