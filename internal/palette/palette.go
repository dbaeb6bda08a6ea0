package palette

import (
	"regexp"
	"strings"
)

// Color is one entry of the fixed furniture palette.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Group is a named section of the palette as shown in the picker.
type Group struct {
	Name   string  `json:"name"`
	Colors []Color `json:"colors"`
}

// Groups is the fixed palette. Hex values are lowercase #rrggbb.
var Groups = []Group{
	{
		Name: "Neutrals",
		Colors: []Color{
			{Name: "Chalk White", Hex: "#f5f2ea"},
			{Name: "Linen", Hex: "#e8e0d0"},
			{Name: "Stone Gray", Hex: "#a8a29a"},
			{Name: "Charcoal", Hex: "#3d3d3d"},
			{Name: "Ink Black", Hex: "#1c1c1e"},
			{Name: "Fog", Hex: "#d4d4d8"},
		},
	},
	{
		Name: "Warm",
		Colors: []Color{
			{Name: "Terracotta", Hex: "#c8714a"},
			{Name: "Mustard", Hex: "#d7a32e"},
			{Name: "Brick Red", Hex: "#9a4030"},
			{Name: "Blush", Hex: "#e3b7a8"},
			{Name: "Ochre", Hex: "#b97d2a"},
			{Name: "Burgundy", Hex: "#6e2b34"},
		},
	},
	{
		Name: "Cool",
		Colors: []Color{
			{Name: "Sage", Hex: "#9caf88"},
			{Name: "Forest Green", Hex: "#3e5947"},
			{Name: "Slate Blue", Hex: "#5b6e8c"},
			{Name: "Navy", Hex: "#263249"},
			{Name: "Dusty Teal", Hex: "#578787"},
			{Name: "Lavender Gray", Hex: "#a9a3b8"},
		},
	},
	{
		Name: "Wood Tones",
		Colors: []Color{
			{Name: "Natural Oak", Hex: "#c9a26f"},
			{Name: "Walnut", Hex: "#6b4a2f"},
			{Name: "Cherry", Hex: "#8b4e3b"},
			{Name: "Ebony", Hex: "#342a23"},
			{Name: "Driftwood", Hex: "#9d8d77"},
			{Name: "Honey Pine", Hex: "#d8b277"},
		},
	},
}

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// ValidHex reports whether s is a normalized #rrggbb color.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Normalize lowercases a hex color, returning false when it is not #rrggbb.
func Normalize(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !hexPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// Contains reports whether hex is one of the palette colors.
func Contains(hex string) bool {
	hex = strings.ToLower(hex)
	for _, g := range Groups {
		for _, c := range g.Colors {
			if c.Hex == hex {
				return true
			}
		}
	}
	return false
}
