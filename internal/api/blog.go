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
	epListBlogPosts  = register(Endpoint{Name: "listBlogPosts", Method: http.MethodGet, Path: "/blog/posts/", Kind: KindQuery, Entity: EntityBlogPost, List: true})
	epGetBlogPost    = register(Endpoint{Name: "getBlogPost", Method: http.MethodGet, Path: "/blog/posts/%s", Kind: KindQuery, Entity: EntityBlogPost})
	epCreateBlogPost = register(Endpoint{Name: "createBlogPost", Method: http.MethodPost, Path: "/blog/posts/", Kind: KindMutation, Entity: EntityBlogPost, Op: OpCreate})
	epUpdateBlogPost = register(Endpoint{Name: "updateBlogPost", Method: http.MethodPut, Path: "/blog/posts/%s", Kind: KindMutation, Entity: EntityBlogPost, Op: OpUpdate})
	epDeleteBlogPost = register(Endpoint{Name: "deleteBlogPost", Method: http.MethodDelete, Path: "/blog/posts/%s", Kind: KindMutation, Entity: EntityBlogPost, Op: OpDelete})

	epListBlogCategories = register(Endpoint{Name: "listBlogCategories", Method: http.MethodGet, Path: "/blog/categories/", Kind: KindQuery, Entity: EntityBlogCategory, List: true})
	epCreateBlogCategory = register(Endpoint{Name: "createBlogCategory", Method: http.MethodPost, Path: "/blog/categories/", Kind: KindMutation, Entity: EntityBlogCategory, Op: OpCreate})
	epUpdateBlogCategory = register(Endpoint{Name: "updateBlogCategory", Method: http.MethodPut, Path: "/blog/categories/%s", Kind: KindMutation, Entity: EntityBlogCategory, Op: OpUpdate})
	epDeleteBlogCategory = register(Endpoint{Name: "deleteBlogCategory", Method: http.MethodDelete, Path: "/blog/categories/%s", Kind: KindMutation, Entity: EntityBlogCategory, Op: OpDelete})

	epListBlogTags  = register(Endpoint{Name: "listBlogTags", Method: http.MethodGet, Path: "/blog/tags/", Kind: KindQuery, Entity: EntityBlogTag, List: true})
	epCreateBlogTag = register(Endpoint{Name: "createBlogTag", Method: http.MethodPost, Path: "/blog/tags/", Kind: KindMutation, Entity: EntityBlogTag, Op: OpCreate})
	epDeleteBlogTag = register(Endpoint{Name: "deleteBlogTag", Method: http.MethodDelete, Path: "/blog/tags/%s", Kind: KindMutation, Entity: EntityBlogTag, Op: OpDelete})

	epGenerateFromTopic = register(Endpoint{Name: "generateBlogPostFromTopic", Method: http.MethodPost, Path: "/blog/generate-from-topic", Kind: KindMutation, Entity: EntityBlogPost, Op: OpCreate})
	epGenerateBulk      = register(Endpoint{Name: "generateBlogPostsBulk", Method: http.MethodPost, Path: "/blog/generate-bulk", Kind: KindMutation, Entity: EntityBlogPost, Op: OpCreate})
)

// BlogService covers posts, their categories and tags, and the draft
// generation endpoints. Generated drafts land in the post list, so the
// generation mutations invalidate the post list like any other create.
type BlogService struct {
	c *Client
}

func (c *Client) Blog() *BlogService {
	return &BlogService{c: c}
}

func (s *BlogService) ListPosts(filter models.BlogPostFilter) *QueryHandle[models.Page[models.BlogPost]] {
	req := &transport.Request{Method: epListBlogPosts.Method, Path: epListBlogPosts.Path, Params: filter.Values()}
	return subscribeQuery(s.c, epListBlogPosts, filter, req, func(page models.Page[models.BlogPost]) []cache.Tag {
		return listProvides(EntityBlogPost, page, func(p models.BlogPost) string { return p.ID })
	})
}

func (s *BlogService) GetPost(id string) *QueryHandle[models.BlogPost] {
	req := &transport.Request{Method: epGetBlogPost.Method, Path: fmt.Sprintf(epGetBlogPost.Path, id)}
	return subscribeQuery(s.c, epGetBlogPost, id, req, func(models.BlogPost) []cache.Tag {
		return []cache.Tag{cache.ItemTag(EntityBlogPost, id)}
	})
}

func (s *BlogService) CreatePost(ctx context.Context, input models.BlogPostInput) (models.BlogPost, error) {
	req := &transport.Request{Method: epCreateBlogPost.Method, Path: epCreateBlogPost.Path, Body: input}
	return runMutation[models.BlogPost](ctx, s.c, req, epCreateBlogPost.WriteInvalidates(""))
}

func (s *BlogService) UpdatePost(ctx context.Context, id string, input models.BlogPostInput) (models.BlogPost, error) {
	req := &transport.Request{Method: epUpdateBlogPost.Method, Path: fmt.Sprintf(epUpdateBlogPost.Path, id), Body: input}
	return runMutation[models.BlogPost](ctx, s.c, req, epUpdateBlogPost.WriteInvalidates(id))
}

func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteBlogPost.Method, Path: fmt.Sprintf(epDeleteBlogPost.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteBlogPost.WriteInvalidates(id))
	return err
}

func (s *BlogService) ListCategories(params models.ListParams) *QueryHandle[models.Page[models.BlogCategory]] {
	req := &transport.Request{Method: epListBlogCategories.Method, Path: epListBlogCategories.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListBlogCategories, params, req, func(page models.Page[models.BlogCategory]) []cache.Tag {
		return listProvides(EntityBlogCategory, page, func(c models.BlogCategory) string { return c.ID })
	})
}

func (s *BlogService) CreateCategory(ctx context.Context, input models.BlogCategoryInput) (models.BlogCategory, error) {
	req := &transport.Request{Method: epCreateBlogCategory.Method, Path: epCreateBlogCategory.Path, Body: input}
	return runMutation[models.BlogCategory](ctx, s.c, req, epCreateBlogCategory.WriteInvalidates(""))
}

func (s *BlogService) UpdateCategory(ctx context.Context, id string, input models.BlogCategoryInput) (models.BlogCategory, error) {
	req := &transport.Request{Method: epUpdateBlogCategory.Method, Path: fmt.Sprintf(epUpdateBlogCategory.Path, id), Body: input}
	return runMutation[models.BlogCategory](ctx, s.c, req, epUpdateBlogCategory.WriteInvalidates(id))
}

func (s *BlogService) DeleteCategory(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteBlogCategory.Method, Path: fmt.Sprintf(epDeleteBlogCategory.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteBlogCategory.WriteInvalidates(id))
	return err
}

func (s *BlogService) ListTags(params models.ListParams) *QueryHandle[models.Page[models.BlogTag]] {
	req := &transport.Request{Method: epListBlogTags.Method, Path: epListBlogTags.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListBlogTags, params, req, func(page models.Page[models.BlogTag]) []cache.Tag {
		return listProvides(EntityBlogTag, page, func(t models.BlogTag) string { return t.ID })
	})
}

func (s *BlogService) CreateTag(ctx context.Context, input models.BlogTagInput) (models.BlogTag, error) {
	req := &transport.Request{Method: epCreateBlogTag.Method, Path: epCreateBlogTag.Path, Body: input}
	return runMutation[models.BlogTag](ctx, s.c, req, epCreateBlogTag.WriteInvalidates(""))
}

func (s *BlogService) DeleteTag(ctx context.Context, id string) error {
	req := &transport.Request{Method: epDeleteBlogTag.Method, Path: fmt.Sprintf(epDeleteBlogTag.Path, id)}
	_, err := runMutation[struct{}](ctx, s.c, req, epDeleteBlogTag.WriteInvalidates(id))
	return err
}

func (s *BlogService) GenerateFromTopic(ctx context.Context, input models.GenerateFromTopicRequest) (models.BlogPost, error) {
	req := &transport.Request{Method: epGenerateFromTopic.Method, Path: epGenerateFromTopic.Path, Body: input}
	return runMutation[models.BlogPost](ctx, s.c, req, epGenerateFromTopic.WriteInvalidates(""))
}

func (s *BlogService) GenerateBulk(ctx context.Context, input models.GenerateBulkRequest) ([]models.BlogPost, error) {
	req := &transport.Request{Method: epGenerateBulk.Method, Path: epGenerateBulk.Path, Body: input}
	return runMutation[[]models.BlogPost](ctx, s.c, req, epGenerateBulk.WriteInvalidates(""))
}
