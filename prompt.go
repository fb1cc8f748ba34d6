package quotelai

import (
	"fmt"
	"strings"
)

// LangPlaceholder is replaced with the target language name in custom prompts.
const LangPlaceholder = "{lang}"

const defaultQuotePrompt = `You are a professional literary translator.
Translate the motivational quote sent by the user into %s.
Keep the meaning, tone and brevity of the original and make it sound natural to a native speaker.
Reply with the translation only: no quotation marks, no notes, no explanations.`

const defaultAuthorPrompt = `You are a professional literary translator.
The user sends a motivational quote and its author. Translate both into %s.
Use the name under which the author is commonly known in %s; keep it unchanged if there is no established form.
Keep the meaning, tone and brevity of the quote and make it sound natural to a native speaker.
Reply on a single line in exactly this format:
translated quote | translated author
Do not add quotation marks, notes or explanations, and do not use the "|" character anywhere else.`

// SystemPrompt returns the system prompt for req.
// A non-empty custom prompt replaces the built-in one; LangPlaceholder in it is
// replaced with the target language name.
func SystemPrompt(custom string, req Request) string {
	lang := LanguageName(req.TargetLang)
	if strings.TrimSpace(custom) != "" {
		return strings.ReplaceAll(custom, LangPlaceholder, lang)
	}
	if req.Author != "" {
		return fmt.Sprintf(defaultAuthorPrompt, lang, lang)
	}
	return fmt.Sprintf(defaultQuotePrompt, lang)
}

// UserPrompt returns the user message for req.
func UserPrompt(req Request) string {
	if req.Author == "" {
		return req.Text
	}
	return fmt.Sprintf("Quote: %s\nAuthor: %s", req.Text, req.Author)
}
