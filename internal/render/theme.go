package render

// Theme controls the accent color a template renders with. Layout is owned
// by the template; the theme only swaps the palette.
type Theme struct {
	ID     string
	Name   string
	Accent string
}

// DefaultThemeID is used when a document names no theme or an unknown one.
const DefaultThemeID = "default"

var themes = map[string]Theme{
	"default": {ID: "default", Name: "Ocean Blue", Accent: "#2563eb"},
	"emerald": {ID: "emerald", Name: "Emerald", Accent: "#059669"},
	"crimson": {ID: "crimson", Name: "Crimson", Accent: "#dc2626"},
	"slate":   {ID: "slate", Name: "Slate", Accent: "#475569"},
	"violet":  {ID: "violet", Name: "Violet", Accent: "#7c3aed"},
	"amber":   {ID: "amber", Name: "Amber", Accent: "#d97706"},
}

// ThemeByID resolves a theme, falling back to the default for unknown or
// empty IDs. Rendering never fails on a bad theme.
func ThemeByID(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return themes[DefaultThemeID]
}

// Themes returns the available themes in a stable order.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, id := range []string{"default", "emerald", "crimson", "slate", "violet", "amber"} {
		out = append(out, themes[id])
	}
	return out
}
