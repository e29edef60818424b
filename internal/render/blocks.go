package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/story"
)

var alternatingDefaults = map[string]string{
	"script_accent": "Your Perfect Venue",
	"title":         "Why Choose Rum River Barn",
	"description":   "Discover what makes our venue the perfect setting for your unforgettable celebration",
}

var alternatingTemplate = template.Must(template.New("alternating_blocks_section").Parse(`<section class="alternating-blocks">
  <div class="alternating-header">
    <div class="script-accent">{{.ScriptAccent}}</div>
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-description">{{.Description}}</p>
  </div>
{{- range $index, $item := .Blocks}}
  <div class="alternating-block{{if $item.Reversed}} alternating-block-reversed{{end}}">
{{- if $item.Image}}
    <div class="alternating-image"><img src="{{$item.Image}}" alt="{{$item.ImageAlt}}" loading="lazy"></div>
{{- end}}
    <div class="alternating-copy">
      <h3>{{$item.Heading}}</h3>
      <div class="alternating-body">{{$item.Body}}</div>
{{- if $item.CTALabel}}
      <a class="alternating-cta" href="{{$item.CTAURL}}">{{$item.CTALabel}}</a>
{{- end}}
    </div>
  </div>
{{- end}}
</section>
`))

type alternatingItemView struct {
	Heading  string
	Body     template.HTML
	Image    string
	ImageAlt string
	CTALabel string
	CTAURL   string
	Reversed bool
}

type alternatingView struct {
	ScriptAccent string
	Title        string
	Description  string
	Blocks       []alternatingItemView
}

func renderAlternatingBlocks(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := alternatingView{
		ScriptAccent: res.Resolve("script_accent", block, nil, alternatingDefaults),
		Title:        res.Resolve("title", block, nil, alternatingDefaults),
		Description:  res.Resolve("description", block, nil, alternatingDefaults),
	}

	for index, item := range block.Blocks("blocks") {
		itemView := alternatingItemView{
			Heading:  item.String("heading"),
			Body:     reg.markdown.Render(item.String("body")),
			Image:    res.ResolveAsset("image", item, nil, ""),
			ImageAlt: item.String("heading"),
			CTALabel: item.String("cta_text"),
			CTAURL:   res.ResolveLink("cta_url", item, "#"),
			Reversed: index%2 == 1,
		}
		view.Blocks = append(view.Blocks, itemView)
	}

	return executeTemplate(alternatingTemplate, view)
}
