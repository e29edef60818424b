package render

import (
	"html/template"

	"github.com/rumriverbarn/venuesite/internal/story"
)

var navbarDefaults = map[string]string{
	"logo_text": "Rum River Barn",
	"cta_text":  "Schedule Tour",
}

// navbarDefaultItems is the static navigation used when the CMS provides no
// items at all.
var navbarDefaultItems = []navItemView{
	{Label: "Home", Href: "/"},
	{Label: "About", Href: "/about"},
	{Label: "Venue", Href: "/venue"},
	{Label: "Gallery", Href: "/gallery"},
	{Label: "Packages", Href: "/packages"},
	{Label: "Contact", Href: "/contact"},
}

var navbarTemplate = template.Must(template.New("navbar_section").Parse(`<nav class="navbar navbar-{{.Variant}}">
  <a class="navbar-logo" href="/">{{.LogoText}}</a>
  <ul class="navbar-items">
{{- range .Items}}
    <li class="navbar-item{{if .IsCta}} navbar-item-cta{{end}}"><a href="{{.Href}}">{{.Label}}</a>
{{- if .Children}}
      <ul class="navbar-children">
{{- range .Children}}
        <li><a href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
      </ul>
{{- end}}
    </li>
{{- end}}
  </ul>
{{- if .ShowCTA}}
  <a class="navbar-cta" href="{{.CTAURL}}">{{.CTALabel}}</a>
{{- end}}
</nav>
`))

type navItemView struct {
	Label    string
	Href     string
	IsCta    bool
	Children []navItemView
}

type navbarView struct {
	LogoText string
	Variant  string
	ShowCTA  bool
	CTALabel string
	CTAURL   string
	Items    []navItemView
}

func renderNavbar(reg *Registry, data *PageData, block story.Block) (template.HTML, error) {
	res := reg.resolver
	view := navbarView{
		LogoText: res.Resolve("logo_text", block, nil, navbarDefaults),
		Variant:  oneOf(block.String("style_variant"), "transparent", "solid", "sticky"),
		ShowCTA:  !block.Has("show_cta") || block.Bool("show_cta"),
		CTALabel: res.Resolve("cta_text", block, nil, navbarDefaults),
		CTAURL:   res.ResolveLink("cta_url", block, "/schedule-tour"),
		Items:    navbarDefaultItems,
	}

	if items := block.Blocks("items"); len(items) > 0 {
		view.Items = make([]navItemView, 0, len(items))
		for _, item := range items {
			view.Items = append(view.Items, navItemFromBlock(reg, item))
		}
	}

	return executeTemplate(navbarTemplate, view)
}

func navItemFromBlock(reg *Registry, item story.Block) navItemView {
	view := navItemView{
		Label: item.String("label"),
		Href:  reg.resolver.ResolveLink("href", item, "#"),
		IsCta: item.Bool("is_cta"),
	}
	for _, child := range item.Blocks("children") {
		view.Children = append(view.Children, navItemFromBlock(reg, child))
	}
	return view
}
