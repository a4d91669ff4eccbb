package theme

import (
	"fmt"
	"strings"
)

// Colors is the named palette shared by every page
type Colors struct {
	Primary           string
	Gray              string
	Background        string
	Text              string
	SidebarBackground string
	// Selected nav entry
	SelectedBackground string
	Muted              string
	Danger             string
}

// Theme is the process-wide palette
type Theme struct {
	Colors Colors
}

var defaultTheme = Theme{
	Colors: Colors{
		Primary:            "#196CE9",
		Gray:               "#A0B2C1",
		Background:         "#ffffff",
		Text:               "#B75D69",
		SidebarBackground:  "#f0f0f0",
		SelectedBackground: "#EDF1F8",
		Muted:              "#888888",
		Danger:             "#DB4455",
	},
}

// Default returns a copy of the static palette
func Default() Theme {
	return defaultTheme
}

// Variables lists the palette as CSS custom properties in a stable order
func (t Theme) Variables() [][2]string {
	return [][2]string{
		{"--color-primary", t.Colors.Primary},
		{"--color-gray", t.Colors.Gray},
		{"--color-background", t.Colors.Background},
		{"--color-text", t.Colors.Text},
		{"--color-sidebar", t.Colors.SidebarBackground},
		{"--color-selected", t.Colors.SelectedBackground},
		{"--color-muted", t.Colors.Muted},
		{"--color-danger", t.Colors.Danger},
	}
}

// CSS renders the palette as a :root block
func (t Theme) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range t.Variables() {
		fmt.Fprintf(&b, "  %s: %s;\n", v[0], v[1])
	}
	b.WriteString("}\n")
	return b.String()
}
