// Package report splits generated wealth reports into display sections.
//
// The engine's compiled markdown is expected to carry two literal
// markers. Marker-based splitting is a best-effort display heuristic,
// not a structured parser: when a marker repeats, only the first
// occurrence counts, and a missing marker degrades to a placeholder.
package report

import "strings"

// Section markers emitted by the engine's report compiler. Matched
// case-insensitively.
const (
	MarkerStrengths = "**Key Strengths:**"
	MarkerOverall   = "**Overall:**"
)

// Fixed headings prefixed to the split sections.
const (
	HeadingDynamics = "### Key Strengths & Portfolio Dynamics\n\n"
	HeadingVerdict  = "### Final Verdict\n\n"
)

// Placeholders shown when a marker (and therefore its section) is
// absent. Never empty: the dashboard always has something to render.
const (
	PlaceholderOutlook  = "Outlook analysis still processing..."
	PlaceholderDynamics = "Portfolio dynamics still processing..."
	PlaceholderVerdict  = "Final verdict still processing..."
)

// Sections is a report decomposed for display. Every field is non-empty
// markdown: either real content or the section's placeholder.
type Sections struct {
	Outlook  string `json:"outlook"`
	Dynamics string `json:"dynamics"`
	Verdict  string `json:"verdict"`
}

// indexFold returns the byte index of the first case-insensitive
// occurrence of marker in s, or -1. The scan runs over the original
// bytes so the returned index is always a valid slice offset into s;
// lowercasing a copy first would shift offsets whenever a rune changes
// byte length under case mapping. Markers are plain ASCII, so a
// fixed-width window is sufficient.
func indexFold(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}

// Decompose splits a report into Outlook / Dynamics / Verdict.
//
// Everything before the first strengths marker is the outlook. Content
// between the strengths marker and the first overall marker (or end of
// string) becomes the dynamics section under its fixed heading; content
// after the overall marker becomes the verdict under its heading. Any
// section whose marker is missing, or whose content is blank, falls
// back to its placeholder.
func Decompose(markdown string) Sections {
	s := Sections{
		Outlook:  PlaceholderOutlook,
		Dynamics: PlaceholderDynamics,
		Verdict:  PlaceholderVerdict,
	}

	idxA := indexFold(markdown, MarkerStrengths)
	idxB := indexFold(markdown, MarkerOverall)

	if idxA < 0 && idxB < 0 {
		return s
	}

	if idxA >= 0 {
		if outlook := markdown[:idxA]; strings.TrimSpace(outlook) != "" {
			s.Outlook = outlook
		}

		rest := markdown[idxA+len(MarkerStrengths):]
		if j := indexFold(rest, MarkerOverall); j >= 0 {
			if dynamics := rest[:j]; strings.TrimSpace(dynamics) != "" {
				s.Dynamics = HeadingDynamics + dynamics
			}
			if verdict := rest[j+len(MarkerOverall):]; strings.TrimSpace(verdict) != "" {
				s.Verdict = HeadingVerdict + verdict
			}
		} else if strings.TrimSpace(rest) != "" {
			s.Dynamics = HeadingDynamics + rest
		}
		return s
	}

	// Strengths marker missing but overall marker present: the text
	// before the overall marker is still the outlook.
	if outlook := markdown[:idxB]; strings.TrimSpace(outlook) != "" {
		s.Outlook = outlook
	}
	if verdict := markdown[idxB+len(MarkerOverall):]; strings.TrimSpace(verdict) != "" {
		s.Verdict = HeadingVerdict + verdict
	}
	return s
}
