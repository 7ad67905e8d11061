// Package classify interprets the free-text final output of a reconciliation
// run. The engine reports in natural language, so detection of "this run
// drafted an email" and "this order is on time" is substring-based; every
// marker the engine emits is kept here so orchestration code never touches
// raw text heuristics.
package classify

import "strings"

const (
	// markerEmail is the block header the engine prepends to an embedded draft.
	markerEmail = "📧 Drafted Email:"
	// markerConfirm is the tool confirmation phrase that precedes a draft.
	markerConfirm = "Email successfully drafted:"
	// markerSubject introduces an email subject line.
	markerSubject = "Subject: "
)

// Kind is the coarse classification of a run's final text.
type Kind int

const (
	// KindReport is plain text with no special handling.
	KindReport Kind = iota
	// KindOnTime signals an on-schedule delivery.
	KindOnTime
	// KindEmailDraft means the text embeds a drafted apology email.
	KindEmailDraft
)

// EmailDraft is a derived view over a run's final text: the report portion
// before the draft, and the editable draft body.
type EmailDraft struct {
	Summary string
	Body    string
}

// Classification is the result of interpreting one final text.
type Classification struct {
	Kind  Kind
	Draft EmailDraft // populated only for KindEmailDraft
}

// Classify interprets text. Deterministic: the same input always yields the
// same classification.
func Classify(text string) Classification {
	if draft, ok := SplitDraft(text); ok {
		return Classification{Kind: KindEmailDraft, Draft: draft}
	}
	if IsOnTime(text) {
		return Classification{Kind: KindOnTime}
	}
	return Classification{Kind: KindReport}
}

// SplitDraft separates a final text into summary and draft body. Separators
// are tried in priority order, first match wins: the draft block header
// followed by a line break, then the tool confirmation phrase, then the first
// subject line. The two header separators are consumed; a subject-line match
// stays at the start of the body.
func SplitDraft(text string) (EmailDraft, bool) {
	if i := strings.Index(text, markerEmail+"\n"); i >= 0 {
		return splitAt(text, i, i+len(markerEmail)+1), true
	}
	if i := strings.Index(text, markerConfirm); i >= 0 {
		return splitAt(text, i, i+len(markerConfirm)), true
	}
	if i := strings.Index(text, markerSubject); i >= 0 {
		return splitAt(text, i, i), true
	}
	return EmailDraft{}, false
}

func splitAt(text string, sepStart, bodyStart int) EmailDraft {
	return EmailDraft{
		Summary: strings.TrimRight(text[:sepStart], " \t\r\n"),
		Body:    strings.TrimSpace(text[bodyStart:]),
	}
}

// HasEmail reports whether text carries a drafted email: either the draft
// block header or a subject line.
func HasEmail(text string) bool {
	return strings.Contains(text, markerEmail) || strings.Contains(text, markerSubject)
}

// IsOnTime reports an on-schedule delivery, case-insensitively.
func IsOnTime(text string) bool {
	return strings.Contains(strings.ToLower(text), "on time")
}

// summaryLimit caps the fallback one-line summary.
const summaryLimit = 60

// Summarize produces the one-line history summary for a final text.
func Summarize(text string) string {
	if HasEmail(text) {
		return "Delay detected, apology email drafted"
	}
	if IsOnTime(text) {
		return "On time, no action needed"
	}
	r := []rune(strings.TrimSpace(text))
	if len(r) > summaryLimit {
		return string(r[:summaryLimit])
	}
	return string(r)
}
