// Package rules evaluates structural content rules independent of the lexicon.
// Rules are pure functions over the raw text; order only decides which reason
// is reported, not safety itself
package rules

import "regexp"

// Reason strings reported by the default rules
const (
	ReasonRepeatedChars = "excessive repeated characters"
	ReasonExternalLink  = "contains external link"
)

// DefaultRepeatThreshold is the minimum run length the repeat rule flags
const DefaultRepeatThreshold = 6

// Rule checks text and reports a violation reason when it matches
type Rule interface {
	Check(text string) (reason string, matched bool)
}

// Default returns the rule set in evaluation order
func Default() []Rule {
	return []Rule{
		RepeatRule{Threshold: DefaultRepeatThreshold},
		URLRule{},
	}
}

// Evaluate runs rules in order, first match wins
func Evaluate(rules []Rule, text string) (string, bool) {
	for _, r := range rules {
		if reason, ok := r.Check(text); ok {
			return reason, true
		}
	}
	return "", false
}

// RepeatRule flags runs of identical runes at or above Threshold.
// RE2 has no backreferences, so this is a plain rune scan
type RepeatRule struct {
	Threshold int
}

// Check scans for a long enough run of one rune
func (r RepeatRule) Check(text string) (string, bool) {
	th := r.Threshold
	if th <= 0 {
		th = DefaultRepeatThreshold
	}

	var prev rune
	run := 0
	for _, c := range text {
		if run > 0 && c == prev {
			run++
		} else {
			prev = c
			run = 1
		}
		if run >= th {
			return ReasonRepeatedChars, true
		}
	}
	return "", false
}

// scheme, dotted domain, 2+ letter tld, optional path
var urlRe = regexp.MustCompile(`(?i)https?://[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}(?:/\S*)?`)

// URLRule flags URL-shaped substrings
type URLRule struct{}

// Check reports whether text embeds an external link
func (URLRule) Check(text string) (string, bool) {
	if urlRe.MatchString(text) {
		return ReasonExternalLink, true
	}
	return "", false
}
