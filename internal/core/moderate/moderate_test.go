package moderate

import (
	"errors"
	"strings"
	"testing"

	"modgate/internal/core/lexicon"
	"modgate/internal/core/rules"
)

type fixedScorer struct {
	p   float64
	err error
}

func (f fixedScorer) Score(string) (float64, error) { return f.p, f.err }

func newPrimary(words ...string) *Primary {
	return NewPrimary(lexicon.NewHolder(lexicon.Build(words)), rules.Default())
}

func TestPrimary_LexiconHitNamesTerm(t *testing.T) {
	t.Parallel()

	p := newPrimary("spam")

	v := p.Check("this is spam")
	if v.IsSafe {
		t.Fatal("expected unsafe verdict")
	}
	if !strings.Contains(v.Reason, "prohibited term") || !strings.Contains(v.Reason, "spam") {
		t.Fatalf("reason = %q, want it to name the term", v.Reason)
	}
}

func TestPrimary_RepeatedCharsWithEmptyDictionary(t *testing.T) {
	t.Parallel()

	p := newPrimary()

	v := p.Check("aaaaaaaa")
	if v.IsSafe {
		t.Fatal("expected unsafe verdict")
	}
	if v.Reason != rules.ReasonRepeatedChars {
		t.Fatalf("reason = %q, want %q", v.Reason, rules.ReasonRepeatedChars)
	}
}

func TestPrimary_LexiconMasksRuleReason(t *testing.T) {
	t.Parallel()

	// text trips both the lexicon and the url rule; the lexicon reason wins
	p := newPrimary("spam")

	v := p.Check("spam at http://example.com")
	if v.IsSafe {
		t.Fatal("expected unsafe verdict")
	}
	if !strings.Contains(v.Reason, "prohibited term") {
		t.Fatalf("reason = %q, want lexicon reason to win", v.Reason)
	}
}

func TestPrimary_Deterministic(t *testing.T) {
	t.Parallel()

	p := newPrimary("spam")
	texts := []string{"this is spam", "aaaaaaaa", "clean text"}
	for _, text := range texts {
		if first, second := p.Check(text), p.Check(text); first != second {
			t.Fatalf("Check(%q) not deterministic: %+v vs %+v", text, first, second)
		}
	}
}

func TestAdvanced_DegradesToSafe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		adv  *Advanced
	}{
		{"nil model", NewAdvanced(nil, 0)},
		{"scoring error", NewAdvanced(fixedScorer{err: errors.New("boom")}, 0)},
		{"nil advanced", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, conf := tc.adv.Check("any text at all")
			if !v.IsSafe {
				t.Fatal("degraded classifier must pass")
			}
			if conf != 0 {
				t.Fatalf("confidence = %v, want 0", conf)
			}
		})
	}
}

func TestAdvanced_FlagsAtThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		p          float64
		wantUnsafe bool
	}{
		{"below threshold", 0.54, false},
		{"at threshold", 0.55, true},
		{"above threshold", 0.90, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, conf := NewAdvanced(fixedScorer{p: tc.p}, 0).Check("text")
			if v.IsSafe == tc.wantUnsafe {
				t.Fatalf("P=%v: IsSafe = %v", tc.p, v.IsSafe)
			}
			if conf != tc.p {
				t.Fatalf("confidence = %v, want %v", conf, tc.p)
			}
			if tc.wantUnsafe && !strings.Contains(v.Reason, "confidence") {
				t.Fatalf("unsafe reason %q should embed the confidence", v.Reason)
			}
		})
	}
}

func TestModerator_PrimaryShortCircuits(t *testing.T) {
	t.Parallel()

	var stages []string
	m := New(newPrimary("spam"), NewAdvanced(fixedScorer{p: 0.99}, 0))
	m.Observe = func(stage string, _ Verdict, _ float64) { stages = append(stages, stage) }

	v := m.Moderate("this is spam")
	if v.IsSafe {
		t.Fatal("expected unsafe verdict")
	}
	if len(stages) != 1 || stages[0] != StagePrimary {
		t.Fatalf("stages = %v, advanced must not run after a primary hit", stages)
	}
}

func TestModerator_CleanTextClassifierUnavailable(t *testing.T) {
	t.Parallel()

	m := New(newPrimary("spam"), NewAdvanced(nil, 0))
	if v := m.Moderate("perfectly clean text"); !v.IsSafe {
		t.Fatalf("verdict = %+v, want safe when classifier is absent", v)
	}
}

func TestModerator_AdvancedFlagProducesUnsafeVerdict(t *testing.T) {
	t.Parallel()

	var gotConf float64
	m := New(newPrimary(), NewAdvanced(fixedScorer{p: 0.9}, 0))
	m.Observe = func(stage string, _ Verdict, conf float64) {
		if stage == StageAdvanced {
			gotConf = conf
		}
	}

	v := m.Moderate("clean looking text")
	if v.IsSafe {
		t.Fatal("expected unsafe verdict from advanced stage")
	}
	if gotConf != 0.9 {
		t.Fatalf("observed confidence = %v, want 0.9", gotConf)
	}
}

func TestRedact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"fullwidth cjk disclosure",
			"内容违规（模型置信度：0.82）",
			"内容违规",
		},
		{
			"ascii parenthetical",
			"content flagged by classifier (confidence: 0.87)",
			"content flagged by classifier",
		},
		{
			"bare label",
			"违规 模型置信度：0.95",
			"违规",
		},
		{
			"no disclosure untouched",
			"text contains prohibited term: spam",
			"text contains prohibited term: spam",
		},
		{
			"whitespace normalized",
			"flagged  (confidence: 0.6)  here",
			"flagged here",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Redact(tc.in)
			if got != tc.want {
				t.Fatalf("Redact(%q) = %q, want %q", tc.in, got, tc.want)
			}
			for _, d := range "0123456789" {
				if tc.name != "no disclosure untouched" && strings.ContainsRune(got, d) {
					t.Fatalf("redacted text %q still contains a digit", got)
				}
			}
		})
	}
}
