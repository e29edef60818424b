package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/story"
)

var heroDefaults = map[string]string{
	"kicker":           "Where Dreams Begin",
	"title":            "Rum River",
	"title_accent":     "Wedding Barn",
	"description":      "Nestled along Minnesota's scenic Rum River, our historic barn offers the perfect blend of rustic charm and modern elegance for your once-in-a-lifetime celebration.",
	"primary_cta_text": "Schedule Your Visit",
}

const heroBackgroundFallback = "/assets/barn-exterior-full-deck-view-evening.jpg"

var heroTemplate = template.Must(template.New("home_hero_section").Parse(`<section class="hero hero-{{.Height}}" style="background-image:url('{{.Background}}')">
  <div class="hero-overlay hero-overlay-{{.Overlay}}"></div>
  <div class="hero-content hero-align-{{.Align}}">
    <div class="hero-kicker">{{.Kicker}}</div>
    <h1 class="hero-title">{{.Title}} <span class="hero-title-accent">{{.TitleAccent}}</span></h1>
    <p class="hero-description">{{.Description}}</p>
    <a class="hero-cta" href="{{.CTAURL}}">{{.CTALabel}}</a>
  </div>
</section>
`))

type heroView struct {
	Kicker      string
	Title       string
	TitleAccent string
	Description string
	CTALabel    string
	CTAURL      string
	Background  string
	Overlay     string
	Align       string
	Height      string
}

func renderHero(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := heroView{
		Kicker:      res.Resolve("kicker", block, nil, heroDefaults),
		Title:       res.Resolve("title", block, nil, heroDefaults),
		TitleAccent: res.Resolve("title_accent", block, nil, heroDefaults),
		Description: res.Resolve("description", block, nil, heroDefaults),
		CTALabel:    res.Resolve("primary_cta_text", block, nil, heroDefaults),
		CTAURL:      res.ResolveLink("primary_cta_url", block, "/contact"),
		Background:  res.ResolveAsset("bg_image", block, nil, heroBackgroundFallback),
		Overlay:     oneOf(block.String("overlay_style"), "soft", "none", "strong"),
		Align:       oneOf(block.String("align"), "center", "left", "right"),
		Height:      oneOf(block.String("height"), "full", "sm", "md", "lg"),
	}
	return executeTemplate(heroTemplate, view)
}

// oneOf returns the value when it is in the allowed set, otherwise the first
// entry as default.
func oneOf(value string, allowed ...string) string {
	for _, option := range allowed {
		if value == option {
			return value
		}
	}
	return allowed[0]
}
