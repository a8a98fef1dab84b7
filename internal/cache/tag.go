package cache

import "fmt"

// Entity names a cached entity type ("Property", "Agent", ...).
type Entity string

// listID is the wire-convention name for collection tags. It appears
// only in String() output.
const listID = "LIST"

// Tag labels a cached result so mutations can find it. A tag is either
// an item tag (entity + id) or a list tag (entity collection); build
// them with ItemTag and ListTag only. The variants are structurally
// distinct, so an item whose id happens to spell "LIST" still cannot
// collide with the collection tag. Tags are comparable and safe to use
// as map keys.
type Tag struct {
	entity Entity
	id     string
	list   bool
}

// ItemTag returns the tag for one record of an entity.
func ItemTag(entity Entity, id string) Tag {
	return Tag{entity: entity, id: id}
}

// ListTag returns the collection tag for an entity. Every list query
// must carry it, even when the list came back empty, so that a later
// create still reaches the mounted empty-list view.
func ListTag(entity Entity) Tag {
	return Tag{entity: entity, list: true}
}

// Entity returns the entity type the tag refers to.
func (t Tag) Entity() Entity {
	return t.entity
}

// IsList reports whether the tag is a collection tag.
func (t Tag) IsList() bool {
	return t.list
}

// ID returns the record id for an item tag, or "" for a list tag.
func (t Tag) ID() string {
	if t.list {
		return ""
	}
	return t.id
}

func (t Tag) String() string {
	if t.list {
		return fmt.Sprintf("%s:%s", t.entity, listID)
	}
	return fmt.Sprintf("%s:%s", t.entity, t.id)
}
