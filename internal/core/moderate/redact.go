package moderate

import (
	"regexp"
	"strings"
)

// confidence disclosures show up two ways: a parenthetical around a labeled
// score, ascii or fullwidth, and a bare label followed by a number
var (
	confParenRe = regexp.MustCompile(`[（(][^（()）]*(?:confidence|置信度)[:：]?\s*[0-9０-９]+(?:[.．][0-9０-９]+)?%?[)）]`)
	confLabelRe = regexp.MustCompile(`(?i)(?:模型置信度|置信度|confidence)[:：]?\s*[0-9０-９]+(?:[.．][0-9０-９]+)?%?`)
	spaceRunRe  = regexp.MustCompile(`\s{2,}`)
)

// Redact strips model-confidence disclosures from a moderation reason and
// normalizes the leftover whitespace and punctuation. The audit copy keeps
// the original; this is for user-facing text only
func Redact(reason string) string {
	out := confParenRe.ReplaceAllString(reason, "")
	out = confLabelRe.ReplaceAllString(out, "")
	out = spaceRunRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	out = strings.Trim(out, ":：,，、;；-")
	return strings.TrimSpace(out)
}
