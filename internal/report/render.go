package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is the shared markdown converter. Report content is untrusted; the
// default goldmark renderer escapes raw HTML rather than passing it
// through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderedSections holds the per-section HTML for the dashboard. A
// section that failed to render carries an error block instead; the
// failure never propagates to sibling sections.
type RenderedSections struct {
	Outlook  string `json:"outlook_html"`
	Dynamics string `json:"dynamics_html"`
	Verdict  string `json:"verdict_html"`
}

// Render converts each section's markdown to HTML independently.
func Render(s Sections) RenderedSections {
	return RenderedSections{
		Outlook:  renderSection(s.Outlook),
		Dynamics: renderSection(s.Dynamics),
		Verdict:  renderSection(s.Verdict),
	}
}

// renderSection converts one section's markdown to HTML. Conversion
// failures (including panics from malformed input) are contained here:
// the caller gets a formatted error block showing the error string.
func renderSection(source string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errorBlock(fmt.Errorf("render panic: %v", r))
		}
	}()

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return errorBlock(err)
	}
	return buf.String()
}

// errorBlock formats a contained render failure for display.
func errorBlock(err error) string {
	return fmt.Sprintf(`<div class="section-error">Failed to render this section: %s</div>`,
		html.EscapeString(err.Error()))
}
