package domain

// Recipe is a dish as served by the recipe API.
type Recipe struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Servings    int          `json:"servings"`
	Image       string       `json:"image,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
}

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Quantity float64 `json:"quantity"`
	Measure  string  `json:"measure"`
	Name     string  `json:"ingredient"`
}

// Step is one instruction in a recipe.
// The JSON keys follow the remote payload ("videoURL", "thumbnailURL").
type Step struct {
	ID               int64  `json:"id"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	VideoURL         string `json:"videoURL,omitempty"`
	ThumbnailURL     string `json:"thumbnailURL,omitempty"`
}

// HasVideo reports whether the step references a video.
func (s Step) HasVideo() bool {
	return s.VideoURL != ""
}

// HasThumbnail reports whether the step references a thumbnail image.
func (s Step) HasThumbnail() bool {
	return s.ThumbnailURL != ""
}

// Title returns the text used as the step heading.
// Falls back to the full description when the short one is missing.
func (s Step) Title() string {
	if s.ShortDescription != "" {
		return s.ShortDescription
	}
	return s.Description
}
