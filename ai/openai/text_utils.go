package openai

import "strings"

// maxPromptChars caps article text sent to the model. Long articles carry
// their signal in the opening paragraphs; the tail is mostly boilerplate.
const maxPromptChars = 6000

// truncateForPrompt trims whitespace and caps text length for prompt use.
func truncateForPrompt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxPromptChars {
		return s
	}
	return s[:maxPromptChars]
}
