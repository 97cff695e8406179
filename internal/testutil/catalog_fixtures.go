package testutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShowResultOptions contains options for generating one show-search result
type ShowResultOptions struct {
	ID          int
	Name        string
	Summary     string
	MediumImage string
	// ImageMode selects how the image object is emitted: "" writes {"medium": MediumImage},
	// "null" writes "image": null, "omit" leaves the field out and "original-only" writes an
	// image object without a medium URL.
	ImageMode string
}

// GenerateSearchResponse builds a show-search JSON body in the catalog's wire format
func GenerateSearchResponse(shows ...ShowResultOptions) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, opts := range shows {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"score":%.2f,"show":{"id":%d,"name":%s,"summary":%s,"status":"Ended"`,
			1.0/float64(i+1), opts.ID, quote(opts.Name), quote(opts.Summary))
		switch opts.ImageMode {
		case "null":
			sb.WriteString(`,"image":null`)
		case "omit":
		case "original-only":
			fmt.Fprintf(&sb, `,"image":{"original":%s}`, quote("http://static.example/original/"+fmt.Sprint(opts.ID)+".jpg"))
		default:
			fmt.Fprintf(&sb, `,"image":{"medium":%s,"original":%s}`, quote(opts.MediumImage), quote(opts.MediumImage+".orig"))
		}
		sb.WriteString("}}")
	}
	sb.WriteString("]")
	return sb.String()
}

// EpisodeOptions contains options for generating one episode-list entry.
// Season and Number are raw JSON values (e.g. `1`, `"2"`, `null`); empty omits the field.
type EpisodeOptions struct {
	ID     int
	Name   string
	Season string
	Number string
}

// GenerateEpisodesResponse builds an episode-list JSON body in the catalog's wire format
func GenerateEpisodesResponse(episodes ...EpisodeOptions) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, opts := range episodes {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":%s,"airdate":"2008-01-20","runtime":60`, opts.ID, quote(opts.Name))
		if opts.Season != "" {
			fmt.Fprintf(&sb, `,"season":%s`, opts.Season)
		}
		if opts.Number != "" {
			fmt.Fprintf(&sb, `,"number":%s`, opts.Number)
		}
		sb.WriteString("}")
	}
	sb.WriteString("]")
	return sb.String()
}

// BatmanSearchResponse is the two-show response used by the "batman" scenarios:
// the first show carries a medium image, the second has no image at all.
func BatmanSearchResponse() string {
	return GenerateSearchResponse(
		ShowResultOptions{ID: 975, Name: "Batman", Summary: "<p>The <b>Caped Crusader</b></p>", MediumImage: "http://x/img.jpg"},
		ShowResultOptions{ID: 6142, Name: "Batman Beyond", Summary: "<p>Neo-Gotham</p>", ImageMode: "omit"},
	)
}

// ThreeEpisodesResponse is the episode list used for show 139
func ThreeEpisodesResponse() string {
	return GenerateEpisodesResponse(
		EpisodeOptions{ID: 1, Name: "Pilot", Season: "1", Number: "1"},
		EpisodeOptions{ID: 2, Name: "Cat's in the Bag...", Season: "1", Number: "2"},
		EpisodeOptions{ID: 3, Name: "...And the Bag's in the River", Season: "1", Number: "3"},
	)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
