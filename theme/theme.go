// Package theme holds the site colour palette and renders it as CSS
// custom properties.
package theme

import "strings"

// Color is a named palette entry.
type Color struct {
	Name string
	Hex  string
}

// Group is an ordered set of colours under a common prefix.
type Group struct {
	Name   string
	Colors []Color
}

// Palette is the full set of colour groups.
type Palette struct {
	Groups []Group
}

// DefaultColor is the entry name that maps to the bare group variable,
// so surface DEFAULT becomes --color-surface.
const DefaultColor = "DEFAULT"

// ContentPaths are the source globs scanned for utility classes.
var ContentPaths = []string{
	"view/**/*.go",
	"app/**/*.go",
}

// Default returns the site palette.
func Default() Palette {
	return Palette{Groups: []Group{
		{Name: "brand", Colors: []Color{
			{"primary", "#1E40AF"},
			{"secondary", "#0F766E"},
			{"accent", "#DC2626"},
			{"neutral", "#374151"},
		}},
		{Name: "surface", Colors: []Color{
			{DefaultColor, "#FFFFFF"},
			{"muted", "#F9FAFB"},
			{"border", "#E5E7EB"},
		}},
		{Name: "chart", Colors: []Color{
			{"blue", "#3B82F6"},
			{"teal", "#14B8A6"},
			{"orange", "#F97316"},
			{"purple", "#8B5CF6"},
			{"red", "#EF4444"},
			{"green", "#22C55E"},
		}},
	}}
}

// Lookup returns the hex value of group/name.
func (p Palette) Lookup(group, name string) (string, bool) {
	for _, g := range p.Groups {
		if g.Name != group {
			continue
		}
		for _, c := range g.Colors {
			if c.Name == name {
				return c.Hex, true
			}
		}
	}
	return "", false
}

// Var returns the custom property name for group/name.
func Var(group, name string) string {
	if name == DefaultColor {
		return "--color-" + group
	}
	return "--color-" + group + "-" + name
}

// CSS renders the palette as a :root rule, in palette order.
func (p Palette) CSS() string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, g := range p.Groups {
		for _, c := range g.Colors {
			b.WriteString(Var(g.Name, c.Name))
			b.WriteByte(':')
			b.WriteString(c.Hex)
			b.WriteByte(';')
		}
	}
	b.WriteString("}")
	return b.String()
}
