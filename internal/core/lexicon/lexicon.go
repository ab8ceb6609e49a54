// Package lexicon builds and queries the prohibited-term index used by the
// primary moderation stage.
//
// The index is a rune trie built once from a dictionary and never mutated
// afterwards; reloads construct a fresh Index and publish it through a Holder
// so in-flight scans always see a fully built structure.
//
// Scanning walks from every start offset and stops at the FIRST terminal node
// reached, so a dictionary term that is a prefix of a longer term always wins.
// This shortest-match behavior is intentional and load-bearing for callers
// that quote the matched term back to the submitter.
package lexicon

import (
	"strings"
)

// Match is a dictionary hit inside a scanned text
type Match struct {
	Term  string // matched dictionary term, lowercase
	Start int    // rune offset of the match start
	End   int    // rune offset one past the match end
}

type node struct {
	children map[rune]*node
	terminal bool
}

// Index is an immutable prefix trie over the dictionary
// safe for concurrent scans once built
type Index struct {
	root  *node
	terms int
}

// Build constructs an Index from words. Terms are trimmed, case folded and
// deduplicated; anything shorter than 2 runes is dropped
func Build(words []string) *Index {
	root := &node{children: map[rune]*node{}}
	seen := make(map[string]struct{}, len(words))
	terms := 0

	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if len([]rune(w)) < 2 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		cur := root
		for _, r := range w {
			next := cur.children[r]
			if next == nil {
				next = &node{children: map[rune]*node{}}
				cur.children[r] = next
			}
			cur = next
		}
		cur.terminal = true
		terms++
	}

	return &Index{root: root, terms: terms}
}

// Terms reports how many distinct terms the index holds
func (ix *Index) Terms() int {
	if ix == nil {
		return 0
	}
	return ix.terms
}

// Scan reports the first dictionary term contained in text, case
// insensitively. A zero-term index never matches
func (ix *Index) Scan(text string) (Match, bool) {
	if ix == nil || ix.terms == 0 {
		return Match{}, false
	}

	rs := []rune(strings.ToLower(text))
	for i := 0; i < len(rs); i++ {
		cur := ix.root
		for j := i; j < len(rs); j++ {
			cur = cur.children[rs[j]]
			if cur == nil {
				break
			}
			if cur.terminal {
				return Match{Term: string(rs[i : j+1]), Start: i, End: j + 1}, true
			}
		}
	}
	return Match{}, false
}
