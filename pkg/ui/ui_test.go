package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/projclone/pkg/clones"
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *ui.Report {
	return &ui.Report{
		Project: clones.Status{
			Name:      "Proj",
			Path:      "/work/Proj",
			Arguments: "client",
			Clones:    2,
		},
		Clones: []clones.Status{
			{Name: "Proj_Clone1", Path: "/work/Proj_Clone1", IsClone: true, Source: "/work/Proj", Arguments: "server", Open: true},
			{Name: "Proj_Clone2", Path: "/work/Proj_Clone2", IsClone: true, Source: "/work/Proj", Arguments: "client"},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "create terminal renderer", format: ui.FormatTerminal},
		{name: "create text renderer", format: ui.FormatText},
		{name: "create json renderer", format: ui.FormatJSON},
		{name: "create yaml renderer", format: ui.FormatYAML},
		{name: "create markdown renderer", format: ui.FormatMarkdown},
		{name: "create auto renderer with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestJSONRenderer_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleReport()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	project := decoded["project"].(map[string]interface{})
	assert.Equal(t, "/work/Proj", project["path"])
	list := decoded["clones"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, true, list[0].(map[string]interface{})["open"])
}

func TestJSONRenderer_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderError(errors.New(errors.ErrProjectOpen, "project is open")))
	assert.Contains(t, buf.String(), `"error": "[PROJECT_OPEN] project is open"`)
}

func TestYAMLRenderer_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatYAML, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleReport()))

	var decoded ui.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleReport(), decoded)
}

func TestTextRenderer_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "Proj (original, closed)")
	assert.Contains(t, out, "1. Proj_Clone1 [open] /work/Proj_Clone1 (arguments: server)")
	assert.Contains(t, out, "2. Proj_Clone2 [closed]")

	buf.Reset()
	require.NoError(t, renderer.RenderResult(&ui.Report{Project: clones.Status{Name: "Solo", Path: "/work/Solo"}}))
	assert.Contains(t, buf.String(), "no clones")
}

func TestTerminalRenderer_Report(t *testing.T) {
	out := ui.RenderReport(sampleReport())
	assert.Contains(t, out, "Proj")
	assert.Contains(t, out, "original")
	assert.Contains(t, out, "Proj_Clone1")
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "/work/Proj_Clone2")
}

func TestReportMarkdown(t *testing.T) {
	md := sampleReport().Markdown()
	assert.Contains(t, md, "# Proj\n")
	assert.Contains(t, md, "| 1 | Proj_Clone1 | open | `server` | `/work/Proj_Clone1` |")

	empty := (&ui.Report{Project: clones.Status{Name: "Solo"}}).Markdown()
	assert.Contains(t, empty, "_No clones._")
}

func TestMarkdownRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatMarkdown, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleReport()))
	assert.Contains(t, buf.String(), "Proj_Clone1")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ui.FormatBytes(tt.in))
	}
}

func TestStaticPrompter(t *testing.T) {
	p := ui.StaticPrompter{Answer: true}
	ok, err := p.Confirm("Delete?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	path, err := p.AskPath("Destination", "/work/Proj_Clone1")
	require.NoError(t, err)
	assert.Equal(t, "/work/Proj_Clone1", path)
}

func TestLoadStyles(t *testing.T) {
	require.NoError(t, ui.LoadStyles([]byte("colors:\n  a:\n    light: '#000'\n    dark: '#fff'\nstyles:\n  Name:\n    bold: true\n    foreground: a\n")))
	assert.True(t, ui.GetStyle("Name").GetBold())
	assert.False(t, ui.GetStyle("Missing").GetBold())

	assert.Error(t, ui.LoadStyles([]byte("colors: [")))
}
