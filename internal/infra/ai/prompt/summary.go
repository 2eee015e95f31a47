package prompt

import "fmt"

// GetSystemPrompt returns the system prompt for report summarization.
func GetSystemPrompt() string {
	return `You are an analyst assistant. You receive an XML sentiment report ` +
		`about social-media messages mentioning companies and their services. ` +
		`The counts in the report are final; never recompute or second-guess them. ` +
		`Write a short executive summary in plain prose: overall sentiment balance, ` +
		`the companies with the most mentions, and any service that stands out ` +
		`positively or negatively. Keep it under 150 words and do not use markdown.`
}

// GetUserPrompt wraps the report document for the model.
func GetUserPrompt(reportXML string) string {
	return fmt.Sprintf("Summarize this sentiment report:\n\n%s", reportXML)
}
