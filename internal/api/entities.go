package api

import "homequest-admin/internal/cache"

// Cached entity types. Tag entities are part of the invalidation
// contract: a mutation on one of these reaches every mounted query
// tagged with it.
const (
	EntityProperty     cache.Entity = "Property"
	EntityAgent        cache.Entity = "Agent"
	EntityUser         cache.Entity = "User"
	EntityBooking      cache.Entity = "Booking"
	EntityVisit        cache.Entity = "Visit"
	EntityBlogPost     cache.Entity = "BlogPost"
	EntityBlogCategory cache.Entity = "BlogCategory"
	EntityBlogTag      cache.Entity = "BlogTag"
	EntityBug          cache.Entity = "Bug"
	EntityPage         cache.Entity = "Page"
	EntityAppUpdate    cache.Entity = "AppUpdate"
	EntityReview       cache.Entity = "Review"
)
