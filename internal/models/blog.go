package models

import (
	"net/url"
	"time"
)

type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	TagIDs      []string  `json:"tag_ids,omitempty"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlogPostInput carries the writable fields for blog post writes.
type BlogPostInput struct {
	Title      string   `json:"title,omitempty"`
	Content    string   `json:"content,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CoverURL   string   `json:"cover_url,omitempty"`
	CategoryID string   `json:"category_id,omitempty"`
	TagIDs     []string `json:"tag_ids,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// BlogPostFilter is the filter selection for the blog post list.
type BlogPostFilter struct {
	Search     string `json:"search,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (f BlogPostFilter) Values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.CategoryID != "" {
		q.Set("category_id", f.CategoryID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	addPagination(q, f.Page, f.Limit)
	return q
}

type BlogCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type BlogCategoryInput struct {
	Name string `json:"name"`
}

type BlogTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type BlogTagInput struct {
	Name string `json:"name"`
}

// GenerateFromTopicRequest asks the generation service for one draft.
type GenerateFromTopicRequest struct {
	Topic      string `json:"topic"`
	CategoryID string `json:"category_id,omitempty"`
	Tone       string `json:"tone,omitempty"`
}

// GenerateBulkRequest asks the generation service for several drafts.
type GenerateBulkRequest struct {
	Topics     []string `json:"topics"`
	CategoryID string   `json:"category_id,omitempty"`
}
