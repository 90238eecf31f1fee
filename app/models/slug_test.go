package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":              "hello-world",
		"  Who was Django? ":       "who-was-django",
		"Crème brûlée recipe":      "creme-brulee-recipe",
		"multiple   spaces--dash":  "multiple-spaces-dash",
		"_under_score_":            "under_score",
		"日本語":                      "",
		"Go 1.26: what's new":      "go-126-whats-new",
		"already-a-slug":           "already-a-slug",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Nil(t, NormalizeTags([]string{"", "  "}))
	assert.Equal(t, []string{"music", "jazz-guitar"}, NormalizeTags([]string{"Music", "Jazz Guitar", "music"}))
}
