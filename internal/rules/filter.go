package rules

import (
	"fmt"
	"strings"

	"github.com/groundcheck/hallucination-agent/internal/models"
)

// DefaultPhrases are the bundled refusal/uncertainty phrases. Responses
// can mix scripts, so both an English and a Chinese set are included.
var DefaultPhrases = []string{
	"I don't know",
	"I am not sure",
	"I cannot answer",
	"as an AI language model",
	"我不知道",
	"我不确定",
	"作为一个人工智能",
	"无法回答",
}

// Filter scans a response for phrases that signal refusal or low
// confidence. The phrase list is ordered: the earliest-listed match wins,
// regardless of where it occurs in the text.
type Filter struct {
	phrases []string
}

// NewFilter builds a filter over the given ordered phrase set. A nil or
// empty set yields a filter that always passes.
func NewFilter(phrases []string) *Filter {
	return &Filter{phrases: phrases}
}

// NewDefaultFilter builds a filter over the bundled phrase set.
func NewDefaultFilter() *Filter {
	return NewFilter(DefaultPhrases)
}

// Check performs a case-insensitive substring scan of the response
// against the phrase set. Pure function, cannot fail.
func (f *Filter) Check(response string) models.RuleOutcome {
	lowered := strings.ToLower(response)

	for _, phrase := range f.phrases {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return models.RuleOutcome{
				Passed:        false,
				MatchedPhrase: phrase,
				Message:       fmt.Sprintf("flagged phrase %q found in response", phrase),
			}
		}
	}

	return models.RuleOutcome{
		Passed:  true,
		Message: "no rule violations",
	}
}
