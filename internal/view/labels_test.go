package view

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board-web/internal/domain"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "recruiting", StatusLabel(domain.PostStatusOpen))
	assert.Equal(t, "recruitment closed", StatusLabel(domain.PostStatusClosed))
	assert.Equal(t, "", StatusLabel(""))
	assert.Equal(t, "", StatusLabel("open"))
}

func TestStatusLabel_UnknownStatusIsEmpty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("status outside OPEN/CLOSED has no label", prop.ForAll(
		func(s string) bool {
			if s == string(domain.PostStatusOpen) || s == string(domain.PostStatusClosed) {
				return true
			}
			return StatusLabel(domain.PostStatus(s)) == ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestCategoryIcon(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{domain.CategoryTeamProject, "team"},
		{domain.CategoryDeveloper, "develop"},
		{domain.CategoryDesigner, "design"},
		{domain.CategoryStudy, "study"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			icon := CategoryIcon(tt.category)
			require.NotNil(t, icon)
			assert.Equal(t, tt.want, icon.Name)
			assert.True(t, strings.HasPrefix(icon.Src, "/static/board/"))
		})
	}

	assert.Nil(t, CategoryIcon(""))
	assert.Nil(t, CategoryIcon("Team-Project"), "match is exact")
	assert.Nil(t, CategoryIcon("marketing"))
}

func TestPostDate(t *testing.T) {
	assert.Equal(t, "2024-01-01", PostDate("2024-01-01T00:00:00Z"))
	assert.Equal(t, "2024-01-01", PostDate("2024-01-01"))
	assert.Equal(t, noDateLabel, PostDate(""))
	assert.Equal(t, "2024", PostDate("2024"))
}

func TestAuthorName(t *testing.T) {
	assert.Equal(t, "Kim", AuthorName(domain.User{Name: "Kim"}))
	assert.Equal(t, "Unknown user", AuthorName(domain.User{}))
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()

	html := string(r.Render("# Title\n\nSome **bold** text"))
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")

	unsafe := string(r.Render("hello <script>alert(1)</script>"))
	assert.NotContains(t, unsafe, "<script>")

	table := string(r.Render("| a | b |\n|---|---|\n| 1 | 2 |"))
	assert.Contains(t, table, "<table>")
}
