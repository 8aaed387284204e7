package types

// Theme is the storefront theming blob stored in shop settings and pushed to
// subscribers by the theme controller.
type Theme struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`
	EventSkin       string `json:"event_skin,omitempty"`
}

// LoadingScreen configures the storefront boot overlay.
type LoadingScreen struct {
	Enabled    bool   `json:"enabled"`
	Text       string `json:"text,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}
