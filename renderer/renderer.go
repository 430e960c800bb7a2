// Package renderer turns valuations and portfolios into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderValuation renders the valuation dashboard to a markdown string.
func RenderValuation(v *Valuation) string {
	partials := map[string]string{
		"valuation_title":    "valuation_title.md",
		"valuation_kpi":      "valuation_kpi.md",
		"valuation_series":   "valuation_series.md",
		"valuation_holdings": "valuation_holdings.md",
		"valuation_movers":   "valuation_movers.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, v)
}

// RenderHoldings renders the portfolio content to a markdown string.
func RenderHoldings(h *Holdings) string {
	return renderTemplate("holdings", "holdings.md", nil, h)
}

// RenderQuotes renders latest closes to a markdown string.
func RenderQuotes(q []Quote) string {
	return renderTemplate("quotes", "quotes.md", nil, q)
}

// RenderListings renders symbol directory search results to a markdown string.
func RenderListings(l *Listings) string {
	return renderTemplate("listings", "listings.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
