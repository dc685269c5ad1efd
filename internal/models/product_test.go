package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
)

func TestMatchesTerm(t *testing.T) {
	p := models.Product{
		Name:      "Air Force 1 Low",
		Link:      "https://example.com/af1-low",
		ColorTags: []string{"white", "gum"},
	}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term matches", "", true},
		{"name substring", "force", true},
		{"name is case-insensitive", "AIR", true},
		{"tag substring", "GUM", true},
		{"tag is case-insensitive", "White", true},
		{"no match", "red", false},
		{"link is not searched", "example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.MatchesTerm(tt.term))
		})
	}
}
