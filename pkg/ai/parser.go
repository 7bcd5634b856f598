package ai

import "strings"

// SummaryOutput is the parsed view of a backend's raw summary text: five
// named sections, each defaulting to the empty string when the backend
// left it out. It is derived from the raw text on demand, never stored
// on its own.
type SummaryOutput struct {
	Overview    string `json:"overview"`
	Decisions   string `json:"decisions"`
	ActionItems string `json:"action_items"`
	Blockers    string `json:"blockers"`
	Resources   string `json:"resources"`
}

// sectionLabels are the recognized labels, in the order the template asks
// for them. The scan below searches them in this order.
var sectionLabels = []string{"overview", "decisions", "action items", "blockers", "resources"}

// ParseSummaryResponse extracts the five sections from raw model text with
// an ordered, case-insensitive label scan: a section's content is
// everything between its label and the next recognized label, or the end
// of the text for the last one. A label that never appears yields an empty
// section. Parsing never fails; malformed text just degrades to empty
// sections.
//
// Known fragility: a label-like token inside a section's body (a model
// quoting "Decisions:" mid-sentence, say) truncates the section there.
// That is inherited model behavior, not something this parser tries to
// repair.
func ParseSummaryResponse(raw string) SummaryOutput {
	lower := strings.ToLower(raw)

	// Locate each label once, scanning forward so a later label is only
	// recognized after the previous found one.
	starts := make([]int, len(sectionLabels))
	ends := make([]int, len(sectionLabels))
	searchFrom := 0
	for i, label := range sectionLabels {
		idx := strings.Index(lower[searchFrom:], label)
		if idx < 0 {
			starts[i] = -1
			continue
		}
		starts[i] = searchFrom + idx
		ends[i] = starts[i] + len(label)
		searchFrom = ends[i]
	}

	sections := make([]string, len(sectionLabels))
	for i := range sectionLabels {
		if starts[i] < 0 {
			continue
		}
		// Content runs to the start of the next label that was found.
		limit := len(raw)
		for j := i + 1; j < len(sectionLabels); j++ {
			if starts[j] >= 0 {
				limit = starts[j]
				break
			}
		}
		sections[i] = trimSection(raw[ends[i]:limit])
	}

	return SummaryOutput{
		Overview:    sections[0],
		Decisions:   sections[1],
		ActionItems: sections[2],
		Blockers:    sections[3],
		Resources:   sections[4],
	}
}

// trimSection strips the label's trailing punctuation and the markdown
// dressing models like to wrap labels in.
func trimSection(s string) string {
	s = strings.TrimLeft(s, ":")
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*")
	s = strings.TrimRight(s, "*#")
	return strings.TrimSpace(s)
}
