package parse

import "strings"

// Context column aliases matched by substring against CSV headers.
// Kept here rather than in the keyword pack so the parser stays self-contained
// for plain exports; the pack carries the same aliases for audit purposes
var (
	nameAliases    = []string{"name"}
	contextAliases = []string{"snippet", "content", "comment", "text", "context"}
)

func parseCSV(raw string) []Candidate {
	lines := strings.Split(raw, "\n")

	// first non-empty line is the header row
	headerIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headers := splitCSVRow(lines[headerIdx])
	nameCol := -1
	contextCols := make([]int, 0, 2)
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if nameCol < 0 && matchesAny(h, nameAliases) {
			nameCol = i
			continue
		}
		if matchesAny(h, contextAliases) {
			contextCols = append(contextCols, i)
		}
	}
	if nameCol < 0 {
		return nil
	}

	out := make([]Candidate, 0, len(lines)-headerIdx)
	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		fields := splitCSVRow(lines[i])
		if nameCol >= len(fields) {
			continue
		}
		name := strings.TrimSpace(fields[nameCol])
		if len(name) <= 2 {
			continue
		}
		parts := make([]string, 0, len(contextCols))
		for _, c := range contextCols {
			if c < len(fields) {
				if s := strings.TrimSpace(fields[c]); s != "" {
					parts = append(parts, s)
				}
			}
		}
		out = append(out, Candidate{
			Name:       name,
			Snippet:    strings.Join(parts, " "),
			SourceLine: i + 1,
		})
	}
	return out
}

func matchesAny(header string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(header, a) {
			return true
		}
	}
	return false
}

// splitCSVRow is a quote-aware comma tokenizer: a field inside "..." may
// contain literal commas, and "" inside quotes is an escaped quote
func splitCSVRow(line string) []string {
	line = strings.TrimRight(line, "\r")
	fields := make([]string, 0, 4)
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}
