package domain

// Settings is the singleton site configuration document.
type Settings struct {
	Theme     string `json:"theme"`
	SiteTitle string `json:"siteTitle"`
	SiteIcon  string `json:"siteIcon"`
}

// SettingsPatch is a partial settings update: nil fields stay untouched.
type SettingsPatch struct {
	Theme     *string `json:"theme"`
	SiteTitle *string `json:"siteTitle"`
	SiteIcon  *string `json:"siteIcon"`
}

const (
	// MaxSiteTitleLen bounds the siteTitle field.
	MaxSiteTitleLen = 60
	// MaxSiteIconLen bounds the siteIcon field (emoji or URL).
	MaxSiteIconLen = 512
)

// Themes lists the accepted theme values.
var Themes = []string{"light", "dark", "forest", "ocean", "sunrise", "twilight"}

// DefaultSettings returns the document created on first read when no
// settings have been stored yet.
func DefaultSettings() Settings {
	return Settings{
		Theme:     "light",
		SiteTitle: "LiteMark",
		SiteIcon:  "🔖",
	}
}

// ValidTheme reports whether theme is one of the accepted values.
func ValidTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// Apply merges the patch into s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.SiteTitle != nil {
		s.SiteTitle = *p.SiteTitle
	}
	if p.SiteIcon != nil {
		s.SiteIcon = *p.SiteIcon
	}
	return s
}
