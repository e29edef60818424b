package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/story"
)

var socialProofDefaults = map[string]string{
	"headline": "Trusted by Minnesota Couples",
}

var socialProofTemplate = template.Must(template.New("brand_social_proof").Parse(`<section class="social-proof">
  <div class="social-proof-headline">{{.Headline}}</div>
  <div class="social-proof-logos">
{{- range .Logos}}
    <img class="social-proof-logo" src="{{.URL}}" alt="{{.Alt}}" loading="lazy">
{{- end}}
  </div>
{{- if .Stats}}
  <div class="social-proof-stats">
{{- range .Stats}}
    <div class="social-proof-stat"><span class="stat-value">{{.Value}}</span><span class="stat-label">{{.Label}}</span></div>
{{- end}}
  </div>
{{- end}}
</section>
`))

type logoView struct {
	URL string
	Alt string
}

type statView struct {
	Value string
	Label string
}

type socialProofView struct {
	Headline string
	Logos    []logoView
	Stats    []statView
}

func renderBrandSocialProof(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := socialProofView{
		Headline: res.Resolve("headline", block, nil, socialProofDefaults),
	}
	for _, logo := range block.Blocks("logos") {
		url := res.ResolveAsset("image", logo, nil, "")
		if url == "" {
			continue
		}
		view.Logos = append(view.Logos, logoView{URL: url, Alt: logo.String("alt")})
	}
	for _, stat := range block.Blocks("stats") {
		view.Stats = append(view.Stats, statView{
			Value: stat.String("value"),
			Label: stat.String("label"),
		})
	}
	return executeTemplate(socialProofTemplate, view)
}

var carouselDefaults = map[string]string{
	"script_accent": "Our Story",
	"section_title": "A Venue With History",
}

const carouselImageFallback = "/assets/barn-interior-loft.jpg"

var carouselTemplate = template.Must(template.New("history_carousel").Parse(`<section class="history-carousel">
  <div class="history-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
  </div>
  <div class="carousel-track" data-slide-count="{{len .Slides}}">
{{- range $index, $slide := .Slides}}
    <div class="carousel-slide{{if eq $index 0}} carousel-slide-active{{end}}" data-slide-index="{{$index}}">
      <img src="{{$slide.Image}}" alt="{{$slide.Heading}}" loading="lazy">
      <div class="carousel-caption">
        <h3>{{$slide.Heading}}</h3>
        <p>{{$slide.Text}}</p>
      </div>
    </div>
{{- end}}
  </div>
{{- if gt (len .Slides) 1}}
  <div class="carousel-controls">
    <button class="carousel-prev" aria-label="Previous slide">&larr;</button>
    <button class="carousel-next" aria-label="Next slide">&rarr;</button>
  </div>
{{- end}}
</section>
`))

type carouselSlideView struct {
	Image   string
	Heading string
	Text    string
}

type carouselView struct {
	ScriptAccent string
	Title        string
	Slides       []carouselSlideView
}

func renderHistoryCarousel(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := carouselView{
		ScriptAccent: res.Resolve("script_accent", block, nil, carouselDefaults),
		Title:        res.Resolve("section_title", block, nil, carouselDefaults),
	}
	for _, slide := range block.Blocks("slides") {
		view.Slides = append(view.Slides, carouselSlideView{
			Image:   res.ResolveAsset("image", slide, nil, carouselImageFallback),
			Heading: slide.String("heading"),
			Text:    slide.String("text"),
		})
	}
	return executeTemplate(carouselTemplate, view)
}

var scheduleFormDefaults = map[string]string{
	"script_accent": "Begin Your Journey",
	"section_title": "Schedule a Private Tour",
	"lead_text":     "Come walk the grounds, see the barn, and picture your day.",
	"submit_text":   "Request a Tour",
	"form_action":   "/api/schedule-tour",
}

var scheduleFormTemplate = template.Must(template.New("schedule_form").Parse(`<section class="schedule-form">
  <div class="schedule-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-lead">{{.Lead}}</p>
  </div>
  <form class="tour-form" method="post" action="{{.Action}}">
    <input type="text" name="name" placeholder="Your Name" required>
    <input type="email" name="email" placeholder="Email Address" required>
    <input type="tel" name="phone" placeholder="Phone Number">
    <input type="date" name="preferred_date" aria-label="Preferred tour date">
    <textarea name="message" placeholder="Tell us about your celebration"></textarea>
    <button type="submit">{{.SubmitText}}</button>
  </form>
</section>
`))

type scheduleFormView struct {
	ScriptAccent string
	Title        string
	Lead         string
	SubmitText   string
	Action       string
}

func renderScheduleForm(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := scheduleFormView{
		ScriptAccent: res.Resolve("script_accent", block, nil, scheduleFormDefaults),
		Title:        res.Resolve("section_title", block, nil, scheduleFormDefaults),
		Lead:         res.Resolve("lead_text", block, nil, scheduleFormDefaults),
		SubmitText:   res.Resolve("submit_text", block, nil, scheduleFormDefaults),
		Action:       res.Resolve("form_action", block, nil, scheduleFormDefaults),
	}
	return executeTemplate(scheduleFormTemplate, view)
}

var mapDefaults = map[string]string{
	"section_title": "Find Your Way to the Barn",
	"address":       "42618 78th Street, Hillman, MN 56338",
	"directions":    "Just over an hour north of the Twin Cities, along the Rum River.",
}

var mapTemplate = template.Must(template.New("map_section").Parse(`<section class="map-section">
  <div class="map-header">
    <h2 class="section-title">{{.Title}}</h2>
    <address class="map-address">{{.Address}}</address>
    <p class="map-directions">{{.Directions}}</p>
  </div>
{{- if .EmbedURL}}
  <div class="map-embed"><iframe src="{{.EmbedURL}}" loading="lazy" title="Venue location map"></iframe></div>
{{- end}}
</section>
`))

type mapView struct {
	Title      string
	Address    string
	Directions string
	EmbedURL   string
}

func renderMapSection(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := mapView{
		Title:      res.Resolve("section_title", block, nil, mapDefaults),
		Address:    res.Resolve("address", block, nil, mapDefaults),
		Directions: res.Resolve("directions", block, nil, mapDefaults),
		EmbedURL:   block.String("embed_url"),
	}
	return executeTemplate(mapTemplate, view)
}

var footerDefaults = map[string]string{
	"logo_text": "Rum River Barn",
	"tagline":   "Where Minnesota love stories begin.",
	"phone":     "(320) 355-2000",
	"email":     "events@rumriverbarn.com",
	"address":   "42618 78th Street, Hillman, MN 56338",
	"copyright": "Rum River Barn & Vineyard. All rights reserved.",
}

var footerTemplate = template.Must(template.New("footer_section").Parse(`<footer class="footer">
  <div class="footer-brand">
    <div class="footer-logo">{{.LogoText}}</div>
    <p class="footer-tagline">{{.Tagline}}</p>
  </div>
  <div class="footer-contact">
    <div class="footer-phone">{{.Phone}}</div>
    <div class="footer-email">{{.Email}}</div>
    <address class="footer-address">{{.Address}}</address>
  </div>
{{- if .Links}}
  <ul class="footer-links">
{{- range .Links}}
    <li><a href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
  </ul>
{{- end}}
{{- if .Social}}
  <ul class="footer-social">
{{- range .Social}}
    <li><a href="{{.Href}}" rel="noopener">{{.Label}}</a></li>
{{- end}}
  </ul>
{{- end}}
  <div class="footer-copyright">&copy; {{.Copyright}}</div>
</footer>
`))

type footerLinkView struct {
	Label string
	Href  string
}

type footerView struct {
	LogoText  string
	Tagline   string
	Phone     string
	Email     string
	Address   string
	Copyright string
	Links     []footerLinkView
	Social    []footerLinkView
}

func renderFooter(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := footerView{
		LogoText:  res.Resolve("logo_text", block, nil, footerDefaults),
		Tagline:   res.Resolve("tagline", block, nil, footerDefaults),
		Phone:     res.Resolve("phone", block, nil, footerDefaults),
		Email:     res.Resolve("email", block, nil, footerDefaults),
		Address:   res.Resolve("address", block, nil, footerDefaults),
		Copyright: res.Resolve("copyright", block, nil, footerDefaults),
	}
	for _, link := range block.Blocks("links") {
		view.Links = append(view.Links, footerLinkView{
			Label: link.String("label"),
			Href:  res.ResolveLink("href", link, "#"),
		})
	}
	for _, link := range block.Blocks("social_links") {
		view.Social = append(view.Social, footerLinkView{
			Label: link.String("label"),
			Href:  res.ResolveLink("href", link, "#"),
		})
	}
	return executeTemplate(footerTemplate, view)
}
