package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/story"
)

var testimonialsDefaults = map[string]string{
	"script_accent": "Kind Words",
	"section_title": "Stories From Our Couples",
	"lead_text":     "Hear from the couples who celebrated with us.",
}

var testimonialItemDefaults = map[string]string{
	"quote":         "Testimonial quote goes here...",
	"customer_name": "Customer Name",
	"cta_text":      "View Their Wedding Gallery",
}

const testimonialAvatarFallback = "/assets/avatar-placeholder.jpg"

var testimonialsTemplate = template.Must(template.New("testimonials_section").Parse(`<section class="testimonials{{if .Deluxe}} testimonials-deluxe{{end}}">
  <div class="testimonials-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-lead">{{.Lead}}</p>
  </div>
  <div class="testimonials-grid">
{{- range .Items}}
    <a class="testimonial-card" href="{{.GalleryLink}}" data-wedding-uuid="{{.WeddingUUID}}">
      <blockquote>&ldquo;{{.Quote}}&rdquo;</blockquote>
      <div class="star-rating" aria-label="5 out of 5 stars">&#9733;&#9733;&#9733;&#9733;&#9733;</div>
      <div class="couple-avatar"><img src="{{.AvatarURL}}" alt="{{.Name}}"></div>
      <div class="couple-name">{{.Name}}</div>
      <div class="wedding-gallery-cta">{{.CTALabel}}</div>
    </a>
{{- end}}
  </div>
</section>
`))

type testimonialItemView struct {
	Quote       string
	Name        string
	AvatarURL   string
	GalleryLink string
	CTALabel    string
	WeddingUUID string
}

type testimonialsView struct {
	ScriptAccent string
	Title        string
	Lead         string
	Deluxe       bool
	Items        []testimonialItemView
}

// renderTestimonials prefers deluxe-linked wedding records when any are
// configured and at least one resolved; otherwise the static testimonial
// items render. Per-item fetch failures degrade that card only.
func renderTestimonials(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := testimonialsView{
		ScriptAccent: res.Resolve("script_accent", block, nil, testimonialsDefaults),
		Title:        res.Resolve("section_title", block, nil, testimonialsDefaults),
		Lead:         res.Resolve("lead_text", block, nil, testimonialsDefaults),
	}

	for _, id := range block.Strings("deluxe_weddings") {
		linked := data.LinkedRecord(id)
		if linked == nil {
			continue
		}
		wedding := linked.Content
		quote := wedding.String("testimonial_text")
		if quote == "" {
			continue
		}
		author := wedding.String("testimonial_author")
		if author == "" {
			author = wedding.String("title")
		}
		view.Items = append(view.Items, testimonialItemView{
			Quote:       quote,
			Name:        author,
			AvatarURL:   res.ResolveAsset("cover_image", wedding, nil, testimonialAvatarFallback),
			GalleryLink: "/real-weddings/" + weddingSlug(linked),
			CTALabel:    testimonialItemDefaults["cta_text"],
			WeddingUUID: id,
		})
	}
	view.Deluxe = len(view.Items) > 0

	if !view.Deluxe {
		for _, item := range block.Blocks("testimonials") {
			view.Items = append(view.Items, testimonialItemView{
				Quote:       res.Resolve("quote", item, nil, testimonialItemDefaults),
				Name:        res.Resolve("customer_name", item, nil, testimonialItemDefaults),
				AvatarURL:   res.ResolveAsset("avatar_image", item, nil, testimonialAvatarFallback),
				GalleryLink: res.ResolveLink("gallery_link", item, "/gallery"),
				CTALabel:    res.Resolve("cta_text", item, nil, testimonialItemDefaults),
			})
		}
	}

	return executeTemplate(testimonialsTemplate, view)
}
