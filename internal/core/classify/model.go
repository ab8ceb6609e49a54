// Package classify implements the statistical violation classifier behind the
// advanced moderation stage.
//
// The model is a linear bag-of-tokens scorer loaded from a JSON artifact
// (vocab, per-token weights, bias, fixed sequence length). Text is normalized,
// tokenized and encoded to exactly MaxLen ids (truncate or pad), then scored
// through a sigmoid to P(violation)
package classify

import (
	"encoding/json"
	"math"
	"os"

	perr "modgate/internal/platform/errors"
)

type artifact struct {
	Vocab   map[string]int `json:"vocab"`
	Weights []float64      `json:"weights"`
	Bias    float64        `json:"bias"`
	MaxLen  int            `json:"max_len"`
	PadID   int            `json:"pad_id"`
}

// Model scores text for policy violations. Immutable after Load,
// safe for concurrent use
type Model struct {
	vocab   map[string]int
	weights []float64
	bias    float64
	maxLen  int
	padID   int
}

// Load reads a model artifact from disk
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read classifier artifact %s", path)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode classifier artifact")
	}
	if a.MaxLen <= 0 {
		return nil, perr.InvalidArgf("classifier artifact: max_len must be positive, got %d", a.MaxLen)
	}
	if a.PadID < 0 || a.PadID >= len(a.Weights) {
		return nil, perr.InvalidArgf("classifier artifact: pad_id %d out of range", a.PadID)
	}
	for tok, id := range a.Vocab {
		if id < 0 || id >= len(a.Weights) {
			return nil, perr.InvalidArgf("classifier artifact: token %q id %d out of range", tok, id)
		}
	}

	return &Model{
		vocab:   a.Vocab,
		weights: a.Weights,
		bias:    a.Bias,
		maxLen:  a.MaxLen,
		padID:   a.PadID,
	}, nil
}

// Score returns P(violation) in [0,1] for text
func (m *Model) Score(text string) (float64, error) {
	if m == nil {
		return 0, perr.Unavailablef("classifier not loaded")
	}

	ids := m.encode(Tokenize(text))
	score := m.bias
	for _, id := range ids {
		score += m.weights[id]
	}

	p := sigmoid(score)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, perr.Internalf("classifier produced non-finite probability")
	}
	return p, nil
}

// encode maps tokens to exactly maxLen ids, truncating long input and
// padding short input with padID. Unknown tokens are skipped
func (m *Model) encode(tokens []string) []int {
	ids := make([]int, 0, m.maxLen)
	for _, tok := range tokens {
		if len(ids) == m.maxLen {
			break
		}
		if id, ok := m.vocab[tok]; ok {
			ids = append(ids, id)
		}
	}
	for len(ids) < m.maxLen {
		ids = append(ids, m.padID)
	}
	return ids
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
