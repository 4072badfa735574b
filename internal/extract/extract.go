// Package extract pulls structured fields out of plain note text with
// line-prefix and keyword heuristics. All functions are pure; a missing
// pattern yields an empty result, never an error.
package extract

import (
	"regexp"
	"strings"
)

const maxSummaryChars = 500

var actionLabels = []string{"action:", "todo:", "follow up:", "next step:"}

// mentionPattern matches "@" followed by capitalized words. Inherited
// heuristic: it both under- and over-matches real names, on purpose.
var mentionPattern = regexp.MustCompile(`@([A-Z][a-z]+(?: [A-Z][a-z]+)*)`)

var priorityTriggers = []string{"prioritizing", "priorities", "next week"}

// ActionItems returns the trimmed lines that look like open tasks: lines
// containing a "[ ]" checkbox or starting with a task label.
func ActionItems(text string) []string {
	out := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.Contains(line, "[ ]") {
			out = append(out, line)
			continue
		}
		lower := strings.ToLower(line)
		for _, label := range actionLabels {
			if strings.HasPrefix(lower, label) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

// Mentions collects @-mention names (without the @) as an unordered set.
func Mentions(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Summary finds a "summary"/"tldr" section and joins the lines under it,
// capped at 500 characters. Returns "" when no such section exists.
func Summary(text string) string {
	collecting := false
	collected := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !collecting {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "summary") || strings.Contains(lower, "tldr") {
				collecting = true
			}
			continue
		}
		if strings.HasPrefix(line, "#") || line == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		collected = append(collected, line)
	}
	return truncateRunes(strings.Join(collected, " "), maxSummaryChars)
}

// Priorities scans prior-report text for a priorities section and returns
// its bullet lines with the markers stripped.
func Priorities(text string) []string {
	collecting := false
	out := []string{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !collecting {
			lower := strings.ToLower(line)
			for _, trigger := range priorityTriggers {
				if strings.Contains(lower, trigger) {
					collecting = true
					break
				}
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			break
		}
		item, ok := stripBullet(line)
		if !ok || item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func stripBullet(line string) (string, bool) {
	for _, marker := range []string{"•", "-", "*"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return "", false
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
