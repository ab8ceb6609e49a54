// Package moderate sequences the moderation stages and composes verdicts.
//
// Primary is the deterministic lexical stage (lexicon scan, then structural
// rules). Advanced wraps the statistical classifier and only runs when
// Primary passes. An unsafe verdict from either stage is a signal for human
// review, never an automatic hard rejection; only reviewer actions reject
package moderate

import (
	"fmt"

	"modgate/internal/core/lexicon"
	"modgate/internal/core/rules"
	"modgate/internal/platform/logger"
)

// Stage names reported to observers
const (
	StagePrimary  = "primary"
	StageAdvanced = "advanced"
)

// DefaultThreshold is the P(violation) at which the advanced stage flags
const DefaultThreshold = 0.55

// Verdict is the outcome of a moderation check. Reason is empty when safe
type Verdict struct {
	IsSafe bool
	Reason string
}

// Safe returns the passing verdict
func Safe() Verdict { return Verdict{IsSafe: true} }

// Unsafe returns a failing verdict with its reason
func Unsafe(reason string) Verdict { return Verdict{Reason: reason} }

// Primary combines the lexicon index and the structural rules into one fast
// synchronous check. Pure and safe for concurrent use
type Primary struct {
	lexicon *lexicon.Holder
	rules   []rules.Rule
}

// NewPrimary builds the primary stage. A nil holder gets an empty index;
// nil rules get the defaults
func NewPrimary(h *lexicon.Holder, rs []rules.Rule) *Primary {
	if h == nil {
		h = lexicon.NewHolder(nil)
	}
	if rs == nil {
		rs = rules.Default()
	}
	return &Primary{lexicon: h, rules: rs}
}

// Check scans the lexicon first so a prohibited term is never masked by a
// structural rule's message, then evaluates the rules in order
func (p *Primary) Check(text string) Verdict {
	if m, ok := p.lexicon.Load().Scan(text); ok {
		return Unsafe(fmt.Sprintf("text contains prohibited term: %s", m.Term))
	}
	if reason, ok := rules.Evaluate(p.rules, text); ok {
		return Unsafe(reason)
	}
	return Safe()
}

// Scorer produces P(violation) for a text
type Scorer interface {
	Score(text string) (float64, error)
}

// Advanced wraps the classifier. A nil model or any scoring error degrades
// to a safe verdict with a warning; the error never reaches the caller
type Advanced struct {
	model     Scorer
	threshold float64
}

// NewAdvanced builds the advanced stage. model may be nil when the artifact
// was not loaded; threshold <= 0 uses DefaultThreshold
func NewAdvanced(model Scorer, threshold float64) *Advanced {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Advanced{model: model, threshold: threshold}
}

// Check scores text, flagging at or above the threshold. The unsafe reason
// embeds the confidence for the audit trail; Redact strips it before any
// user-facing use. The returned float is the confidence, 0 when degraded
func (a *Advanced) Check(text string) (Verdict, float64) {
	if a == nil || a.model == nil {
		return Safe(), 0
	}

	p, err := a.model.Score(text)
	if err != nil {
		logger.Named("moderate").Warn().Err(err).Msg("classifier unavailable, passing")
		return Safe(), 0
	}

	if p >= a.threshold {
		return Unsafe(fmt.Sprintf("content flagged by classifier (confidence: %.2f)", p)), p
	}
	return Safe(), p
}

// Observer receives per-stage outcomes, e.g. for the audit sink
type Observer func(stage string, v Verdict, confidence float64)

// Moderator runs primary then, only on a pass, advanced
type Moderator struct {
	Primary  *Primary
	Advanced *Advanced
	Observe  Observer // optional
}

// New builds a Moderator over the two stages
func New(p *Primary, a *Advanced) *Moderator {
	return &Moderator{Primary: p, Advanced: a}
}

// Moderate composes the stage verdicts. An unsafe result here routes the
// submission to review; it does not reject content
func (m *Moderator) Moderate(text string) Verdict {
	v := m.Primary.Check(text)
	m.observe(StagePrimary, v, 0)
	if !v.IsSafe {
		return v
	}

	av, conf := m.Advanced.Check(text)
	m.observe(StageAdvanced, av, conf)
	return av
}

func (m *Moderator) observe(stage string, v Verdict, conf float64) {
	if m.Observe != nil {
		m.Observe(stage, v, conf)
	}
}
