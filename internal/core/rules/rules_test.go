package rules

import "testing"

func TestRepeatRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		threshold int
		text      string
		want      bool
	}{
		{"six ascii repeats", 6, "aaaaaa", true},
		{"eight repeats", 6, "aaaaaaaa", true},
		{"five repeats passes", 6, "aaaaa", false},
		{"run inside text", 6, "ok !!!!!! ok", true},
		{"cjk run", 6, "好好好好好好", true},
		{"broken run", 6, "aaabaaab", false},
		{"custom threshold", 3, "zzz", true},
		{"zero threshold uses default", 0, "aaaaa", false},
		{"empty text", 6, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reason, got := RepeatRule{Threshold: tc.threshold}.Check(tc.text)
			if got != tc.want {
				t.Fatalf("Check(%q) = %v, want %v", tc.text, got, tc.want)
			}
			if got && reason != ReasonRepeatedChars {
				t.Fatalf("reason = %q, want %q", reason, ReasonRepeatedChars)
			}
		})
	}
}

func TestURLRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"http link", "visit http://example.com now", true},
		{"https link", "https://sub.example.co/path?q=1", true},
		{"uppercase scheme", "HTTP://EXAMPLE.COM", true},
		{"no scheme", "example.com is nice", false},
		{"no tld dot", "http://localhost", false},
		{"plain text", "nothing here", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reason, got := URLRule{}.Check(tc.text)
			if got != tc.want {
				t.Fatalf("Check(%q) = %v, want %v", tc.text, got, tc.want)
			}
			if got && reason != ReasonExternalLink {
				t.Fatalf("reason = %q, want %q", reason, ReasonExternalLink)
			}
		})
	}
}

func TestEvaluate_OrderDecidesReason(t *testing.T) {
	t.Parallel()

	// text violates both rules; the repeat rule is first so its reason wins
	text := "aaaaaaaa http://example.com"

	reason, ok := Evaluate(Default(), text)
	if !ok {
		t.Fatal("expected a violation")
	}
	if reason != ReasonRepeatedChars {
		t.Fatalf("reason = %q, want %q", reason, ReasonRepeatedChars)
	}
}

func TestEvaluate_NoMatch(t *testing.T) {
	t.Parallel()

	if reason, ok := Evaluate(Default(), "clean text"); ok || reason != "" {
		t.Fatalf("Evaluate = (%q, %v), want no match", reason, ok)
	}
}
