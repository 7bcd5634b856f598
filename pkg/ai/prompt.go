package ai

import (
	"fmt"
	"strings"

	"teamdigest-backend/internal/chat/domain"
)

// summaryInstructions is the fixed template every backend embeds the
// transcript in. The five labels must match the parser's recognized
// section labels in parser.go.
const summaryInstructions = `You are an assistant that digests team chat conversations.
Read the transcript below and produce a summary for the period %s with exactly these five labeled sections:

Overview:
One or two sentences describing what the conversation was about.

Decisions:
Decisions that were reached. Write "None" if no decision was made.

Action Items:
Concrete follow-ups, each with its owner. Keep @mentions exactly as written in the transcript.

Blockers:
Anything blocking progress. Write "None" if nothing is blocked.

Resources:
Links, documents or tools that were referenced. Write "None" if there were none.

Do not add any other sections or commentary.

TRANSCRIPT:
%s`

// BuildPrompt renders the deterministic prompt for a message batch: one
// "[time] author: body" line per message in the order given, embedded in
// the fixed instruction template.
func BuildPrompt(messages []domain.CachedMessage, periodLabel string) string {
	var transcript strings.Builder
	for _, msg := range messages {
		author := "Unknown"
		if msg.AuthorName != nil && *msg.AuthorName != "" {
			author = *msg.AuthorName
		}
		body := ""
		if msg.Body != nil {
			body = strings.TrimSpace(*msg.Body)
		}
		fmt.Fprintf(&transcript, "[%s] %s: %s\n", msg.CreatedTime.UTC().Format("2006-01-02 15:04"), author, body)
	}
	return fmt.Sprintf(summaryInstructions, periodLabel, transcript.String())
}
