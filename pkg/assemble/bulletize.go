package assemble

import "strings"

// Bulletize converts a delimiter-separated project description into a
// markdown-style bullet list. En-dashes become hyphens, leading and
// trailing double-hyphen markers are stripped, and the text is split on
// the double-hyphen delimiter so single hyphens inside sentences
// survive. Fragments already starting with a hyphen keep it.
func Bulletize(text string) (out string) {
	text = strings.ReplaceAll(text, "–", "-")
	text = strings.TrimSpace(text)

	for strings.HasPrefix(text, "--") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "--"))
	}
	for strings.HasSuffix(text, "--") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "--"))
	}

	lines := []string{}
	for _, fragment := range strings.Split(text, "--") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if !strings.HasPrefix(fragment, "-") {
			fragment = "- " + fragment
		}
		lines = append(lines, fragment)
	}

	out = strings.Join(lines, "\n")
	return out
}
