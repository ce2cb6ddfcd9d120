// Package extract pulls replies and submissions out of raw model output.
// Every function reports failure with ok == false and never returns partial text.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/threadbot/internal/core"
)

// zeroWidthArtifact is an escaped zero-width space the model picked up from its training data.
const zeroWidthArtifact = "&amp;#x200B;\n"

const (
	// fallback cut points, used when the model never emits the end tag
	escapedNewline = `\n`
	bangRun        = "!!!!"

	maxTitleLength = 300
)

type SubmissionKind string

const (
	KindLink     SubmissionKind = "url"
	KindSelfText SubmissionKind = "selftext"
)

type Reply struct {
	Body string
}

type Submission struct {
	Title    string
	Kind     SubmissionKind
	MainText string
}

func clean(text string) string {
	return strings.ReplaceAll(text, zeroWidthArtifact, "")
}

// ExtractReply returns the text the model wrote after prompt, cut at the first endTag.
// When endTag is missing the cut falls back to the last escaped newline, then to the first "!!!!".
// An empty endTag matches right after prompt, so nothing is extracted.
func ExtractReply(prompt, generated, endTag string) (Reply, bool) {
	text := clean(generated)
	start := len(prompt)
	if start > len(text) {
		return Reply{}, false
	}

	cut := -1
	if i := strings.Index(text[start:], endTag); i != -1 {
		cut = start + i
	}
	if cut == -1 {
		cut = strings.LastIndex(text, escapedNewline)
	}
	if cut == -1 {
		cut = strings.Index(text, bangRun)
	}
	if cut <= start {
		return Reply{}, false
	}

	return Reply{Body: text[start:cut]}, true
}

// ExtractSubmission parses "<|soss|><|sot|>title<|eot|><|sost|>body<|eost|>" or its
// link counterpart. The body must follow the title with no gap.
func ExtractSubmission(generated string) (Submission, bool) {
	text := clean(generated)

	titleStart := strings.Index(text, core.TagStartTitle)
	titleEnd := strings.Index(text, core.TagEndTitle)
	if titleStart == -1 || titleEnd == -1 {
		return Submission{}, false
	}

	var (
		kind                SubmissionKind
		bodyTag, bodyEndTag string
	)
	switch {
	case strings.HasPrefix(text, core.TagStartLinkSubmission):
		kind, bodyTag, bodyEndTag = KindLink, core.TagStartLink, core.TagEndLink
	case strings.HasPrefix(text, core.TagStartSelfSubmission):
		kind, bodyTag, bodyEndTag = KindSelfText, core.TagStartSelfText, core.TagEndSelfText
	default:
		return Submission{}, false
	}

	bodyStart := indexFrom(text, bodyTag, titleEnd)
	bodyEnd := indexFrom(text, bodyEndTag, titleEnd)

	if bodyStart != titleEnd+len(core.TagEndTitle) {
		return Submission{}, false
	}
	if bodyStart == -1 || bodyEnd == -1 || bodyEnd < bodyStart+len(bodyTag) {
		return Submission{}, false
	}

	titleFrom := titleStart + len(core.TagStartTitle)
	if titleEnd < titleFrom {
		return Submission{}, false
	}
	title := text[titleFrom:titleEnd]
	if n := utf8.RuneCountInString(title); n == 0 || n >= maxTitleLength {
		return Submission{}, false
	}

	return Submission{
		Title:    title,
		Kind:     kind,
		MainText: text[bodyStart+len(bodyTag) : bodyEnd],
	}, true
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}
	return from + i
}
