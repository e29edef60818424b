package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/resolver"
	"github.com/rumriverbarn/venuesite/internal/story"
)

var realWeddingDefaults = map[string]string{
	"title":    "A Rum River Wedding",
	"location": "Rum River Barn, Hillman, MN",
}

const weddingHeroFallback = "/assets/barn-exterior-full-deck-view-evening.jpg"

// initialRevealCount photos render visible; the rest are hidden and revealed
// incrementally as the visitor scrolls.
const initialRevealCount = 15

var realWeddingTemplate = template.Must(template.New("real_wedding").Parse(`<article class="real-wedding">
  <header class="wedding-hero" style="background-image:url('{{.HeroImage}}')">
    <div class="wedding-hero-overlay"></div>
    <div class="wedding-hero-content">
      <h1 class="wedding-title">{{.Title}}</h1>
{{- if .Date}}
      <div class="wedding-date">{{.Date}}</div>
{{- end}}
      <div class="wedding-location">{{.Location}}</div>
    </div>
  </header>
{{- if .StoryText}}
  <div class="wedding-story">{{.StoryText}}</div>
{{- end}}
{{- if .Photos}}
  <div class="wedding-masonry" data-photo-count="{{len .Photos}}" data-reveal-step="12">
{{- range $index, $photo := .Photos}}
    <figure class="masonry-item{{if $photo.Hidden}} masonry-item-hidden{{end}}" data-photo-index="{{$index}}">
      <img src="{{$photo.URL}}" alt="{{$photo.Alt}}" loading="lazy" data-lightbox-index="{{$index}}">
{{- if $photo.Caption}}
      <figcaption>{{$photo.Caption}}</figcaption>
{{- end}}
    </figure>
{{- end}}
  </div>
{{- end}}
{{- if .Testimonial}}
  <blockquote class="wedding-testimonial">
    <p>&ldquo;{{.Testimonial}}&rdquo;</p>
{{- if .TestimonialAuthor}}
    <cite>{{.TestimonialAuthor}}</cite>
{{- end}}
  </blockquote>
{{- end}}
</article>
`))

type weddingPhotoView struct {
	URL     string
	Alt     string
	Caption string
	Hidden  bool
}

type realWeddingView struct {
	Title             string
	Date              string
	Location          string
	HeroImage         string
	StoryText         template.HTML
	Testimonial       string
	TestimonialAuthor string
	Photos            []weddingPhotoView
}

func renderRealWedding(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := realWeddingView{
		Title:             res.Resolve("title", block, nil, realWeddingDefaults),
		Date:              block.String("wedding_date"),
		Location:          res.Resolve("location", block, nil, realWeddingDefaults),
		HeroImage:         weddingHero(block),
		Testimonial:       block.String("testimonial_text"),
		TestimonialAuthor: block.String("testimonial_author"),
	}

	if text := block.String("story_text"); text != "" {
		view.StoryText = reg.markdown.Render(text)
	}

	for index, photo := range block.Blocks("gallery_photos") {
		url := resolver.NormalizeAsset(map[string]any(photo))
		if url == "" {
			continue
		}
		alt := photo.String("alt")
		if alt == "" {
			alt = view.Title
		}
		view.Photos = append(view.Photos, weddingPhotoView{
			URL:     url,
			Alt:     alt,
			Caption: photo.String("caption"),
			Hidden:  index >= initialRevealCount,
		})
	}

	return executeTemplate(realWeddingTemplate, view)
}

func weddingHero(block story.Block) string {
	if url := resolver.NormalizeAsset(block.Field("hero_image")); url != "" {
		return url
	}
	if url := resolver.NormalizeAsset(block.Field("cover_image")); url != "" {
		return url
	}
	if photos := block.Blocks("gallery_photos"); len(photos) > 0 {
		if url := resolver.NormalizeAsset(map[string]any(photos[0])); url != "" {
			return url
		}
	}
	return weddingHeroFallback
}
