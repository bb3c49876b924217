// Package templates renders the marketing page and its editable regions.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/zrasti/malleable-go/internal/application/services"
)

var pageTemplates = template.Must(template.New("pageRenderer").Parse(
	`{{define "head"}}<!DOCTYPE html><html lang="sl"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.Title}}</title><link rel="stylesheet" href="/static/site.css"></head><body>{{end}}` +
		`{{define "previewBanner"}}<aside role="alert" class="preview-banner"><a href="/api/v1/preview/exit">Preview Mode</a></aside>{{end}}` +
		`{{define "errorView"}}<main class="layout"><h1>Oops</h1><h2>Something unique to your preview went wrong.</h2><div class="explanation"><p>The production website is <strong>still available</strong> and this does not affect other users.</p></div><hr><h2>Reason</h2><div class="explanation"><p>{{.FailureError}}</p></div></main>{{end}}` +
		`{{define "editToolbar"}}<div class="toolbar"><button id="edit-toggle" type="button">Edit</button><button id="share" type="button" hidden>Share</button><button id="cancel" type="button" hidden>Cancel</button><span id="share-link" hidden></span></div>{{end}}`,
))

type headData struct {
	Title string
}

type errorViewData struct {
	FailureError string
}

// regionTags whitelists the HTML tags a region may render as. Unknown tags
// fall back to a paragraph.
var regionTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "p": true, "span": true,
}

// PageRenderer produces the full HTML document for every page state: the
// live defaults, the editable view, a snapshot preview, and the preview
// error view.
type PageRenderer struct{}

// NewPageRenderer creates a page renderer.
func NewPageRenderer() *PageRenderer {
	return &PageRenderer{}
}

// Render builds the page HTML for the given render data.
func (pr *PageRenderer) Render(data *services.RenderData) string {
	var html bytes.Buffer

	pr.executeTemplate(&html, "head", headData{Title: data.Title})

	if data.Previewing || data.Failed {
		pr.executeTemplate(&html, "previewBanner", nil)
	}

	if data.Failed {
		pr.executeTemplate(&html, "errorView", errorViewData{FailureError: data.FailureError})
		html.WriteString(`</body></html>`)
		return html.String()
	}

	html.WriteString(`<main class="layout">`)
	for _, region := range data.Regions {
		pr.renderRegion(&html, region.ID, region.Tag, region.Text, data.Editable)
	}
	html.WriteString(`</main>`)

	if data.Editable {
		pr.executeTemplate(&html, "editToolbar", nil)
		html.WriteString(`<script src="/static/editor.js"></script>`)
	}

	html.WriteString(`</body></html>`)
	return html.String()
}

// renderRegion writes one region as an identified wrapper around the text
// element. The wrapper carries the id and the inner element carries
// contenteditable, so capture can address edits by the parent id.
func (pr *PageRenderer) renderRegion(buf *bytes.Buffer, id, tag, text string, editable bool) {
	if !regionTags[tag] {
		tag = "p"
	}

	editableAttr := ""
	if editable {
		editableAttr = ` contenteditable="true"`
	}

	fmt.Fprintf(buf, `<div id="%s"><%s%s>%s</%s></div>`,
		template.HTMLEscapeString(id), tag, editableAttr,
		template.HTMLEscapeString(text), tag)
}

func (pr *PageRenderer) executeTemplate(buf *bytes.Buffer, name string, data interface{}) {
	err := pageTemplates.ExecuteTemplate(buf, name, data)
	if err != nil {
		log.Printf("ERROR: Failed to execute page template '%s': %v", name, err)
		buf.WriteString("<!-- template error -->")
	}
}
