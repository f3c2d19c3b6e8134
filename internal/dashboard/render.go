package dashboard

import (
	"fmt"
	"html/template"

	"lifegoals/internal/core"
)

// iconPaths holds SVG path data for the icons the page uses.
var iconPaths = map[string]string{
	"briefcase":      `<rect x="2" y="7" width="20" height="14" rx="2"/><path d="M16 21V5a2 2 0 0 0-2-2h-4a2 2 0 0 0-2 2v16"/>`,
	"heart":          `<path d="M19 14c1.5-1.5 3-3.2 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.8 0-3 .5-4.5 2-1.5-1.5-2.7-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4 3 5.5l7 7Z"/>`,
	"graduation-cap": `<path d="M22 10 12 5 2 10l10 5 10-5Z"/><path d="M6 12v5c3 3 9 3 12 0v-5"/>`,
	"trending-up":    `<polyline points="22 7 13.5 15.5 8.5 10.5 2 17"/><polyline points="16 7 22 7 22 13"/>`,
	"target":         `<circle cx="12" cy="12" r="10"/><circle cx="12" cy="12" r="6"/><circle cx="12" cy="12" r="2"/>`,
	"rocket":         `<path d="M4.5 16.5c-1.5 1.3-2 5-2 5s3.7-.5 5-2c.7-.8.7-2.1-.1-2.9a2.2 2.2 0 0 0-2.9-.1Z"/><path d="m12 15-3-3a22 22 0 0 1 2-3.9A12.9 12.9 0 0 1 22 2c0 2.7-.8 7.5-6 11a22.4 22.4 0 0 1-4 2Z"/>`,
	"x":              `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
}

// Icon renders a named icon as inline SVG. Unknown names render nothing.
func Icon(name string, size int) template.HTML {
	body, ok := iconPaths[name]
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(
		`<svg class="icon icon-%s" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">%s</svg>`,
		template.HTMLEscapeString(name), size, size, body))
}

// ProgressBar renders a labelled progress bar for a percentage.
func ProgressBar(percent int) template.HTML {
	width := percent
	if width < 0 {
		width = 0
	}
	if width > 100 {
		width = 100
	}
	return template.HTML(fmt.Sprintf(
		`<div class="progress" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="%d"><div class="progress__bar" style="width: %d%%"></div></div>`,
		percent, width))
}

// Badge renders a pill with escaped text and an optional colour token.
func Badge(text, color string) template.HTML {
	class := "badge"
	if color != "" {
		class += " bg-" + template.HTMLEscapeString(color)
	}
	return template.HTML(`<span class="` + class + `">` + template.HTMLEscapeString(text) + `</span>`)
}

// PartialPath serves the goal list section on its own.
const PartialPath = "/ui/goals"

// FuncMap returns the template helpers for the dashboard templates. base is
// the path selection links point at; every selection link also carries the
// matching PartialPath URL in data-partial.
func FuncMap(base string) template.FuncMap {
	return template.FuncMap{
		"icon":        Icon,
		"progressBar": ProgressBar,
		"badge":       Badge,
		"href": func(sel core.Selection) string {
			return Href(base, sel)
		},
		"partialHref": func(sel core.Selection) string {
			return Href(PartialPath, sel)
		},
		"percent": func(p int) string {
			return fmt.Sprintf("%d%%", p)
		},
		"delay": func(i int) string {
			return fmt.Sprintf("%.1fs", float64(i)*0.1)
		},
	}
}
