package models

// Theme is the colour scheme of a scrum.
type Theme string

// Available themes.
const (
	ThemeBubblegum  Theme = "bubblegum"
	ThemeButtercup  Theme = "buttercup"
	ThemeIndigo     Theme = "indigo"
	ThemeLavender   Theme = "lavender"
	ThemeMagenta    Theme = "magenta"
	ThemeNavy       Theme = "navy"
	ThemeOrange     Theme = "orange"
	ThemeOxblood    Theme = "oxblood"
	ThemePeriwinkle Theme = "periwinkle"
	ThemePoppy      Theme = "poppy"
	ThemePurple     Theme = "purple"
	ThemeSeafoam    Theme = "seafoam"
	ThemeSky        Theme = "sky"
	ThemeTan        Theme = "tan"
	ThemeTeal       Theme = "teal"
	ThemeYellow     Theme = "yellow"
)

type themeColors struct {
	main   string
	accent string
}

//nolint:gochecknoglobals // fixed palette
var themePalette = map[Theme]themeColors{
	ThemeBubblegum:  {main: "#ED87C4", accent: "#000000"},
	ThemeButtercup:  {main: "#FFE99A", accent: "#000000"},
	ThemeIndigo:     {main: "#3C1F8C", accent: "#FFFFFF"},
	ThemeLavender:   {main: "#CEC4FF", accent: "#000000"},
	ThemeMagenta:    {main: "#A4126A", accent: "#FFFFFF"},
	ThemeNavy:       {main: "#00247D", accent: "#FFFFFF"},
	ThemeOrange:     {main: "#FF8A43", accent: "#000000"},
	ThemeOxblood:    {main: "#4A000A", accent: "#FFFFFF"},
	ThemePeriwinkle: {main: "#8682FF", accent: "#000000"},
	ThemePoppy:      {main: "#FF5E5E", accent: "#000000"},
	ThemePurple:     {main: "#914A9F", accent: "#FFFFFF"},
	ThemeSeafoam:    {main: "#CCECE0", accent: "#000000"},
	ThemeSky:        {main: "#6E99FF", accent: "#000000"},
	ThemeTan:        {main: "#C2A27E", accent: "#000000"},
	ThemeTeal:       {main: "#228391", accent: "#000000"},
	ThemeYellow:     {main: "#FFDF4D", accent: "#000000"},
}

// AllThemes lists themes in display order.
func AllThemes() []Theme {
	return []Theme{
		ThemeBubblegum, ThemeButtercup, ThemeIndigo, ThemeLavender,
		ThemeMagenta, ThemeNavy, ThemeOrange, ThemeOxblood,
		ThemePeriwinkle, ThemePoppy, ThemePurple, ThemeSeafoam,
		ThemeSky, ThemeTan, ThemeTeal, ThemeYellow,
	}
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	_, ok := themePalette[t]
	return ok
}

// MainColor is the hex background colour of the theme.
func (t Theme) MainColor() string {
	return themePalette[t].main
}

// AccentColor is the hex foreground colour that reads on MainColor.
func (t Theme) AccentColor() string {
	return themePalette[t].accent
}

// Next cycles to the following theme, wrapping around.
func (t Theme) Next() Theme {
	all := AllThemes()
	for i, candidate := range all {
		if candidate == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
