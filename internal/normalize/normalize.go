// Package normalize maps heterogeneous stored question documents into the
// canonical Question shape. All duck-typed shape-guessing lives here; the
// rest of the system only sees domain.Question.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"quizbot/internal/domain"
)

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Normalize derives a canonical Question from a raw stored document. It is
// a pure function: the same input always yields the same output. It fails
// only when no usable question text can be extracted; missing options
// render as empty strings and an unparseable answer key defaults to A with
// CorrectAssumed set.
func Normalize(raw domain.RawQuestion) (domain.Question, error) {
	text := questionText(raw.Fields)
	if text == "" {
		return domain.Question{}, domain.NewMalformedQuestionError(raw.Key)
	}

	options := make(map[domain.Letter]string, len(domain.Letters))
	for i, l := range domain.Letters {
		options[l] = optionText(raw.Fields, i, l)
	}

	correct, assumed := correctLetter(raw.Fields)

	return domain.Question{
		SourceID:       SourceID(raw),
		Text:           text,
		Options:        options,
		Correct:        correct,
		CorrectAssumed: assumed,
	}, nil
}

// SourceID resolves the stable dedup identifier for a raw document: the
// question_id field when present, otherwise the document's storage key.
// The sampler uses it to filter already-served candidates without paying
// for a full normalization.
func SourceID(raw domain.RawQuestion) string {
	if id := strings.TrimSpace(asString(raw.Fields["question_id"])); id != "" {
		return id
	}
	return raw.Key
}

func questionText(fields map[string]any) string {
	text := strings.TrimSpace(asString(fields["question"]))
	if text == "" {
		text = strings.TrimSpace(asString(fields["text"]))
	}
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(text, ""))
}

// optionText resolves the display text for one option letter. Resolution
// order: option_<l>, bare lowercase, bare uppercase, opt_<l>, an options
// mapping keyed by the letter, an options sequence indexed by position.
func optionText(fields map[string]any, idx int, l domain.Letter) string {
	lower := strings.ToLower(string(l))
	for _, key := range []string{"option_" + lower, lower, string(l), "opt_" + lower} {
		if s := strings.TrimSpace(asString(fields[key])); s != "" {
			return s
		}
	}
	switch opts := fields["options"].(type) {
	case map[string]any:
		if s := strings.TrimSpace(asString(opts[lower])); s != "" {
			return s
		}
		if s := strings.TrimSpace(asString(opts[string(l)])); s != "" {
			return s
		}
	case []any:
		if idx < len(opts) {
			return strings.TrimSpace(asString(opts[idx]))
		}
	case []string:
		if idx < len(opts) {
			return strings.TrimSpace(opts[idx])
		}
	}
	return ""
}

// correctLetter resolves the answer key. It never fails: input that cannot
// be parsed yields LetterA with assumed=true so that callers can surface a
// validation warning instead of silently trusting the default.
func correctLetter(fields map[string]any) (letter domain.Letter, assumed bool) {
	raw := fields["answer"]
	if raw == nil {
		raw = fields["correct"]
	}
	if s := strings.ToLower(strings.TrimSpace(asString(raw))); s != "" {
		if len(s) == 1 && s[0] >= 'a' && s[0] <= 'd' {
			return domain.Letters[s[0]-'a'], false
		}
		if n, err := strconv.Atoi(s); err == nil {
			if n >= 1 && n <= 4 {
				return domain.Letters[n-1], false
			}
			return domain.LetterA, true
		}
		for i := 0; i < len(s); i++ {
			if s[i] >= 'a' && s[i] <= 'd' {
				return domain.Letters[s[i]-'a'], false
			}
		}
		return domain.LetterA, true
	}
	for _, key := range []string{"answer_index", "correct_index"} {
		if v, ok := fields[key]; ok {
			if n, err := strconv.Atoi(strings.TrimSpace(asString(v))); err == nil && n >= 1 && n <= 4 {
				return domain.Letters[n-1], false
			}
			return domain.LetterA, true
		}
	}
	return domain.LetterA, true
}

// asString renders a document field value as display text. JSON decoding
// turns numbers into float64, so integral floats are printed without a
// fractional part.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
