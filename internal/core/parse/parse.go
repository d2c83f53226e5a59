// Package parse turns raw free text or CSV into prospect candidates.
// It is tuned for short "Name — context" style lines and tabular exports,
// not arbitrary prose; parsing is deterministic with no hidden state
package parse

import (
	"regexp"
	"strings"

	perr "prospector/internal/platform/errors"
)

// Format selects the parsing mode
type Format string

// Supported input formats
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a wire-format string
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", perr.InvalidArgf("unknown input format %q", s)
}

// Candidate is one extracted prospect candidate. Ephemeral; consumed by the
// feature extractor and never persisted directly
type Candidate struct {
	Name       string
	Snippet    string
	SourceLine int // 1-based line in the raw input
}

var (
	// nameWord is one capitalized word of a person name
	nameWord = `[A-Z][\pL'.-]*`

	// nameDashLine matches "Name — context" with 1-4 capitalized words
	nameDashLine = regexp.MustCompile(
		`^\s*(` + nameWord + `(?:\s+` + nameWord + `){0,3})\s*[-–—]+\s*(\S.*)$`)

	// bareNameLine matches a line that is only a 2-4 word capitalized name
	bareNameLine = regexp.MustCompile(
		`^\s*(` + nameWord + `(?:\s+` + nameWord + `){1,3})\s*$`)

	// globalPair is the last-resort scan across the whole joined text
	globalPair = regexp.MustCompile(
		`(` + nameWord + `(?:\s+` + nameWord + `){0,3})\s*[-–—]+\s*([^\n—–-]+)`)
)

// Parse extracts candidates from raw input in the given format.
// Empty input yields an empty slice; the pipeline treats that as a failure,
// not a silent success
func Parse(raw string, format Format) ([]Candidate, error) {
	switch format {
	case FormatText:
		return parseText(raw), nil
	case FormatCSV:
		return parseCSV(raw), nil
	}
	return nil, perr.InvalidArgf("unknown input format %q", string(format))
}

func parseText(raw string) []Candidate {
	lines := strings.Split(raw, "\n")
	out := make([]Candidate, 0, 8)

	for i, line := range lines {
		if m := nameDashLine.FindStringSubmatch(line); m != nil {
			out = append(out, Candidate{
				Name:       strings.TrimSpace(m[1]),
				Snippet:    strings.TrimSpace(m[2]),
				SourceLine: i + 1,
			})
			continue
		}
		if m := bareNameLine.FindStringSubmatch(line); m != nil {
			out = append(out, Candidate{
				Name:       strings.TrimSpace(m[1]),
				Snippet:    windowSnippet(lines, i),
				SourceLine: i + 1,
			})
		}
	}
	if len(out) > 0 {
		return out
	}

	// neither pattern fired anywhere; global pair scan over the joined text
	joined := strings.Join(lines, "\n")
	for _, m := range globalPair.FindAllStringSubmatch(joined, -1) {
		name := strings.TrimSpace(m[1])
		snippet := strings.TrimSpace(m[2])
		if name == "" || snippet == "" {
			continue
		}
		out = append(out, Candidate{Name: name, Snippet: snippet})
	}
	return out
}

// windowSnippet builds context for a bare name line from the previous line
// and the next two, skipping other bare name lines
func windowSnippet(lines []string, i int) string {
	parts := make([]string, 0, 3)
	grab := func(j int) {
		if j < 0 || j >= len(lines) {
			return
		}
		s := strings.TrimSpace(lines[j])
		if s == "" || bareNameLine.MatchString(s) || nameDashLine.MatchString(s) {
			return
		}
		parts = append(parts, s)
	}
	grab(i - 1)
	grab(i + 1)
	grab(i + 2)
	return strings.Join(parts, " ")
}
