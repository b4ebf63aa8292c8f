package domain

// Letter identifies one of the four answer options on a question card.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option letters in card order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// TopicRandom is the sentinel topic meaning "draw from every topic under
// the subject".
const TopicRandom = "random"

// RawQuestion is a stored question document as it comes out of the question
// store: an opaque field mapping plus the storage key it was found under.
// Stored documents are heterogeneous; all shape-guessing lives in the
// normalize package.
type RawQuestion struct {
	// Key is the document's storage key, used as the dedup identifier when
	// the document carries no question_id field of its own.
	Key    string
	Fields map[string]any
}

// Question is the canonical, shape-independent question consumed by the
// quiz engine. It is always re-derived from a RawQuestion and never
// persisted in this form.
type Question struct {
	// SourceID is the stable identifier used for dedup tracking.
	SourceID string
	Text     string
	Options  map[Letter]string
	Correct  Letter
	// CorrectAssumed is set when the answer key could not be parsed and
	// LetterA was assumed. Callers should log it rather than serve the
	// default silently.
	CorrectAssumed bool
}

// OptionText returns the display text for a letter, which may be empty:
// cards render missing options as blanks rather than failing.
func (q Question) OptionText(l Letter) string {
	return q.Options[l]
}
