package models

import (
	"strings"
	"time"
)

// Product is a single affiliate catalog entry. Records are immutable after
// creation; the catalog only supports create and delete.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Link      string    `json:"link" bson:"link"`
	ImageSrc  string    `json:"imageSrc" bson:"image_src"`
	ColorTags []string  `json:"colorTags,omitempty" bson:"color_tags,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// MatchesTerm reports whether the product matches a case-insensitive search
// term against its name or any of its color tags. An empty term matches
// everything.
func (p Product) MatchesTerm(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	for _, tag := range p.ColorTags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
