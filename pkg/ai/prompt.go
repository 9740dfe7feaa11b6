package ai

import "strings"

const sponsorshipPromptPrefix = "Summarise what product the following advertisement from a YouTube video is about " +
	"and let the user know if there are any promotions like discounts on mentioned products: "

// SponsorshipPrompt builds the summarization prompt for one sponsorship
// transcript
func SponsorshipPrompt(transcript string) string {
	return sponsorshipPromptPrefix + strings.TrimSpace(transcript)
}

// CleanSummary strips a markdown code fence the model sometimes wraps its
// answer in
func CleanSummary(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	// A multi-line fence may carry an info string (```markdown, ```text)
	if idx := strings.IndexByte(content, '\n'); idx != -1 && !strings.ContainsAny(strings.TrimSpace(content[:idx]), " \t") {
		content = content[idx+1:]
	}
	return strings.TrimSpace(content)
}
