package models

// DefaultImageURL is used whenever the catalog returns a show without a medium image.
const DefaultImageURL = "https://t4.ftcdn.net/jpg/03/03/62/45/240_F_303624505_u0bFT1Rnoj8CMUSs8wMCwoKlnWlh5Jiq.jpg"

// Show represents a TV show normalized from a catalog search result
type Show struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"` // may contain inline markup from the catalog
	Image   string `json:"image"`   // never empty
}

// ShowQueryResult is one entry of the catalog's show-search response
type ShowQueryResult struct {
	Score float64 `json:"score"`
	Show  RawShow `json:"show"`
}

// RawShow is the show object nested in a ShowQueryResult
type RawShow struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Summary string    `json:"summary"`
	Image   *RawImage `json:"image"`
}

// RawImage holds the image URLs of a show; the catalog sends null when a show has no artwork.
type RawImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// MediumImage returns the medium-resolution image URL or an empty string when absent.
func (s RawShow) MediumImage() string {
	if s.Image == nil {
		return ""
	}
	return s.Image.Medium
}
