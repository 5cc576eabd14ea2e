package campaign

import (
	"strings"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// ParseProspectLines turns pasted free text into an ordered,
// deduplicated prospect list. Accepted per-line formats:
//
//	Name <email@host.com>
//	Name, email@host.com
//	email@host.com
//
// Lines whose email lacks both "@" and "." are dropped silently; this
// is pre-filtering of pasted junk, not strict validation. Duplicate
// emails (case-insensitive) keep the first occurrence.
func ParseProspectLines(text string) []models.Prospect {
	out := []models.Prospect{}
	seen := make(map[string]struct{})

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var name, email string

		switch {
		case strings.Contains(line, "<") && strings.Contains(line, ">"):
			left, rest, _ := strings.Cut(line, "<")
			mid, _, _ := strings.Cut(rest, ">")
			name = strings.TrimSpace(left)
			email = strings.TrimSpace(mid)
		case strings.Contains(line, ","):
			left, right, _ := strings.Cut(line, ",")
			name = strings.TrimSpace(left)
			email = strings.TrimSpace(right)
			if name == "" || email == "" {
				// Not a usable "Name, email" pair; treat the whole
				// line as a bare email candidate instead.
				name = ""
				email = line
			}
		default:
			email = line
		}

		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			continue
		}

		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, models.Prospect{Name: name, Email: email})
	}

	return out
}

// CountDroppedLines reports how many non-blank input lines did not make
// it into the parsed list, either as invalid or as duplicates. Purely a
// UX hint for the operator; dropped lines are never an error.
func CountDroppedLines(text string, parsed []models.Prospect) int {
	nonBlank := 0
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) != "" {
			nonBlank++
		}
	}
	if n := nonBlank - len(parsed); n > 0 {
		return n
	}
	return 0
}
