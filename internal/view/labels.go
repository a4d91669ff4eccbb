package view

import (
	"board-web/internal/domain"
)

const noDateLabel = "No date information"

// Icon is an image shown next to a category badge
type Icon struct {
	Name string
	Src  string
	Alt  string
}

var categoryIcons = map[string]Icon{
	domain.CategoryTeamProject: {Name: "team", Src: "/static/board/team_icon.svg", Alt: "team project icon"},
	domain.CategoryDeveloper:   {Name: "develop", Src: "/static/board/develop_icon.svg", Alt: "developer icon"},
	domain.CategoryDesigner:    {Name: "design", Src: "/static/board/design_icon.svg", Alt: "designer icon"},
	domain.CategoryStudy:       {Name: "study", Src: "/static/board/study_icon.svg", Alt: "study icon"},
}

// CategoryIcon returns the icon for an exact category match, or nil
func CategoryIcon(category string) *Icon {
	icon, ok := categoryIcons[category]
	if !ok {
		return nil
	}
	return &icon
}

// StatusLabel maps a post status to its badge text
func StatusLabel(status domain.PostStatus) string {
	switch status {
	case domain.PostStatusOpen:
		return "recruiting"
	case domain.PostStatusClosed:
		return "recruitment closed"
	default:
		return ""
	}
}

// PostDate is the date part (first 10 characters) of createdDate
func PostDate(createdDate string) string {
	if createdDate == "" {
		return noDateLabel
	}
	if len(createdDate) < 10 {
		return createdDate
	}
	return createdDate[:10]
}

// AuthorName falls back to a placeholder when the name is missing
func AuthorName(u domain.User) string {
	if u.Name == "" {
		return "Unknown user"
	}
	return u.Name
}
