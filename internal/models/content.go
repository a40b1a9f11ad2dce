package models

// Image is a sized picture, used for the header logo.
type Image struct {
	Src    string `yaml:"src" json:"src"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

// ThemedImage holds one picture per color theme.
type ThemedImage struct {
	Light string `yaml:"light" json:"light"`
	Dark  string `yaml:"dark" json:"dark"`
}

// Header is the top block of the page: the extension logo and a welcome message.
type Header struct {
	Logo    Image  `yaml:"logo" json:"logo"`
	Message string `yaml:"message" json:"message"`
}

// Sponsor is an acknowledgement shown in the sponsors section.
type Sponsor struct {
	Title string      `yaml:"title" json:"title"`
	Link  string      `yaml:"link" json:"link"`
	Image ThemedImage `yaml:"image" json:"image"`

	// Width is the rendered image width, in percent of the container.
	Width int `yaml:"width" json:"width"`

	// Message is optional. Sponsors without a message render as a centered logo.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
	Extra   string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// SupportChannel is a way for users to support the extension author.
type SupportChannel struct {
	Title   string `yaml:"title" json:"title"`
	Link    string `yaml:"link" json:"link"`
	Message string `yaml:"message" json:"message"`
}

// SocialMedia is a link to one of the author's social profiles.
type SocialMedia struct {
	Title string `yaml:"title" json:"title"`
	Link  string `yaml:"link" json:"link"`
}
