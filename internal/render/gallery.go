package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/resolver"
	"github.com/rumriverbarn/venuesite/internal/story"
)

var loveStoriesDefaults = map[string]string{
	"script_accent": "Real Love Stories",
	"title":         "Weddings at the Barn",
	"description":   "Every celebration tells a unique story of love, laughter, and happily ever after.",
}

var galleryCardDefaults = map[string]string{
	"couple_names": "Couple Names",
	"season":       "Summer 2024",
	"venue":        "Rum River Barn",
}

const galleryCoverFallback = "/wedding-photos/placeholder.jpg"

var loveStoriesTemplate = template.Must(template.New("love_stories_gallery").Parse(`<section class="love-stories">
  <div class="love-stories-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-lead">{{.Description}}</p>
  </div>
  <div class="wedding-gallery">
{{- range .Cards}}
    <a class="gallery-item{{if .Unlinked}} gallery-item-unlinked{{end}}" href="{{.Href}}" data-wedding-uuid="{{.WeddingUUID}}">
      <img src="{{.Cover}}" alt="{{.CoupleNames}} at Rum River Barn" width="800" height="800">
      <div class="gallery-overlay">
        <div class="gallery-couple-names">{{.CoupleNames}}</div>
        <div class="gallery-season">{{.Season}}</div>
        <div class="gallery-details">{{.PhotoCount}} Photos &bull; {{.Venue}}</div>
      </div>
    </a>
{{- end}}
  </div>
</section>
`))

type galleryCardView struct {
	CoupleNames string
	Season      string
	Venue       string
	PhotoCount  int
	Cover       string
	Href        string
	WeddingUUID string
	Unlinked    bool
}

type loveStoriesView struct {
	ScriptAccent string
	Title        string
	Description  string
	Cards        []galleryCardView
}

func renderLoveStories(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := loveStoriesView{
		ScriptAccent: res.Resolve("script_accent", block, nil, loveStoriesDefaults),
		Title:        res.Resolve("title", block, nil, loveStoriesDefaults),
		Description:  res.Resolve("description", block, nil, loveStoriesDefaults),
	}

	for _, card := range block.Blocks("galleries") {
		weddingUUID := card.String("wedding_story")
		if weddingUUID == "" {
			weddingUUID = data.CardLink(card.UID())
		}

		var linkedContent story.Block
		linked := data.LinkedRecord(weddingUUID)
		if linked != nil {
			linkedContent = linked.Content
		}

		cardView := galleryCardView{
			CoupleNames: res.Resolve("couple_names", card, linkedContent, galleryCardDefaults),
			Season:      res.Resolve("season", card, linkedContent, galleryCardDefaults),
			Venue:       res.Resolve("venue", card, linkedContent, galleryCardDefaults),
			Cover:       galleryCover(reg, card),
			Href:        res.ResolveLink("href", card, "#"),
			WeddingUUID: weddingUUID,
			Unlinked:    weddingUUID == "" || linked == nil,
			PhotoCount:  galleryPhotoCount(card, linkedContent),
		}
		view.Cards = append(view.Cards, cardView)
	}

	return executeTemplate(loveStoriesTemplate, view)
}

// galleryCover picks the card cover: an indexed gallery photo when the
// editor chose one, the card's own image next, then the static placeholder.
func galleryCover(reg *Registry, card story.Block) string {
	photos := card.Blocks("gallery_photos")
	if card.Has("cover_image_index") && len(photos) > 0 {
		index := card.Int("cover_image_index")
		if index >= 0 && index < len(photos) {
			if url := resolver.NormalizeAsset(map[string]any(photos[index])); url != "" {
				return url
			}
		}
	}
	return reg.resolver.ResolveAsset("image", card, nil, galleryCoverFallback)
}

// galleryPhotoCount recomputes the displayed count from the resolved photo
// list. A separately stored counter field is only trusted when there is no
// list to count, so the count can never diverge from the actual content.
func galleryPhotoCount(card, linked story.Block) int {
	if linked != nil {
		if photos := linked.Blocks("gallery_photos"); len(photos) > 0 {
			return len(photos)
		}
	}
	if photos := card.Blocks("gallery_photos"); len(photos) > 0 {
		return len(photos)
	}
	return card.Int("photo_count")
}

var featuredDefaults = map[string]string{
	"script_accent": "Love Stories",
	"section_title": "Real Weddings at the Barn",
}

var featuredTemplate = template.Must(template.New("featured_weddings_section").Parse(`<section class="featured-weddings">
  <div class="featured-weddings-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
{{- if .Description}}
    <p class="section-description">{{.Description}}</p>
{{- end}}
  </div>
  <div class="weddings-grid">
{{- range .Weddings}}
    <a class="wedding-card" href="/real-weddings/{{.Slug}}">
{{- if .Cover}}
      <div class="wedding-image"><img src="{{.Cover}}" alt="{{.Title}} wedding at Rum River Barn" loading="lazy"></div>
{{- end}}
      <div class="wedding-overlay">
        <div class="wedding-couple-names">{{.Title}}</div>
{{- if .Date}}
        <div class="wedding-date">{{.Date}}</div>
{{- end}}
{{- if .Location}}
        <div class="wedding-location">{{.Location}}</div>
{{- end}}
      </div>
    </a>
{{- end}}
  </div>
{{- if .CTALabel}}
  <div class="featured-weddings-cta"><a class="cta-button" href="{{.CTAURL}}">{{.CTALabel}}</a></div>
{{- end}}
</section>
`))

type featuredWeddingView struct {
	Title    string
	Slug     string
	Cover    string
	Date     string
	Location string
}

type featuredView struct {
	ScriptAccent string
	Title        string
	Description  string
	CTALabel     string
	CTAURL       string
	Weddings     []featuredWeddingView
}

func renderFeaturedWeddings(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := featuredView{
		ScriptAccent: res.Resolve("script_accent", block, nil, featuredDefaults),
		Title:        res.Resolve("section_title", block, nil, featuredDefaults),
		Description:  block.String("section_description"),
		CTALabel:     block.String("cta_text"),
		CTAURL:       res.ResolveLink("cta_url", block, "#"),
	}

	// Records that failed to load are skipped; one broken link never hides
	// the rest of the grid.
	for _, id := range block.Strings("featured_weddings") {
		linked := data.LinkedRecord(id)
		if linked == nil {
			continue
		}
		wedding := linked.Content
		cover := resolver.NormalizeAsset(wedding.Field("cover_image"))
		if cover == "" {
			cover = resolver.NormalizeAsset(wedding.Field("hero_image"))
		}
		view.Weddings = append(view.Weddings, featuredWeddingView{
			Title:    wedding.String("title"),
			Slug:     weddingSlug(linked),
			Cover:    cover,
			Date:     wedding.String("wedding_date"),
			Location: wedding.String("location"),
		})
	}

	return executeTemplate(featuredTemplate, view)
}

func weddingSlug(record *story.Story) string {
	if record == nil {
		return ""
	}
	const prefix = "real-weddings/"
	if len(record.FullSlug) > len(prefix) && record.FullSlug[:len(prefix)] == prefix {
		return record.FullSlug[len(prefix):]
	}
	return record.Slug
}
