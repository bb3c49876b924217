package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zrasti/malleable-go/internal/application/services"
	"github.com/zrasti/malleable-go/internal/domain/entities/page"
)

func renderData() *services.RenderData {
	return &services.RenderData{
		Title: "Test Page",
		Regions: []page.MergedRegion{
			{ID: "title", Tag: "h1", Text: "Hello"},
			{ID: "intro", Tag: "p", Text: "Welcome"},
		},
	}
}

func TestRenderStaticPage(t *testing.T) {
	html := NewPageRenderer().Render(renderData())

	assert.Contains(t, html, "<title>Test Page</title>")
	assert.Contains(t, html, `<div id="title"><h1>Hello</h1></div>`)
	assert.Contains(t, html, `<div id="intro"><p>Welcome</p></div>`)
	assert.NotContains(t, html, "contenteditable")
	assert.NotContains(t, html, "Preview Mode")
}

func TestRenderEditablePage(t *testing.T) {
	data := renderData()
	data.Editable = true

	html := NewPageRenderer().Render(data)

	assert.Contains(t, html, `<h1 contenteditable="true">Hello</h1>`)
	assert.Contains(t, html, "editor.js")
	assert.Contains(t, html, `id="share"`)
}

func TestRenderPreviewBanner(t *testing.T) {
	data := renderData()
	data.Previewing = true

	html := NewPageRenderer().Render(data)

	assert.Contains(t, html, "Preview Mode")
	assert.Contains(t, html, "/api/v1/preview/exit")
	assert.NotContains(t, html, "contenteditable")
}

func TestRenderErrorView(t *testing.T) {
	data := &services.RenderData{
		Title:        "Test Page",
		Failed:       true,
		FailureError: "snapshot does not exist or access is denied",
	}

	html := NewPageRenderer().Render(data)

	assert.Contains(t, html, "Oops")
	assert.Contains(t, html, "Something unique to your preview went wrong.")
	assert.Contains(t, html, "snapshot does not exist or access is denied")
	assert.Contains(t, html, "Preview Mode", "the error view keeps the exit banner")
	assert.NotContains(t, html, `<div id="title">`, "no regions render on failure")
}

func TestRenderEscapesRegionText(t *testing.T) {
	data := &services.RenderData{
		Title: "Test Page",
		Regions: []page.MergedRegion{
			{ID: "title", Tag: "h1", Text: `<script>alert("x")</script>`},
		},
	}

	html := NewPageRenderer().Render(data)

	require.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderUnknownTagFallsBack(t *testing.T) {
	data := &services.RenderData{
		Title: "Test Page",
		Regions: []page.MergedRegion{
			{ID: "weird", Tag: "iframe", Text: "content"},
		},
	}

	html := NewPageRenderer().Render(data)

	assert.Contains(t, html, `<div id="weird"><p>content</p></div>`)
	assert.NotContains(t, html, "<iframe")
}
