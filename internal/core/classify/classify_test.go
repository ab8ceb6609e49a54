package classify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeArtifact(t *testing.T, a map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"ascii words", "Hello World", []string{"hello", "world"}},
		{"digits in word", "abc123 def", []string{"abc123", "def"}},
		{"cjk single runes", "违规内容", []string{"违", "规", "内", "容"}},
		{"mixed cjk ascii", "bad内容", []string{"bad", "内", "容"}},
		{"fullwidth folds to ascii", "ＳＰＡＭ", []string{"spam"}},
		{"punct separates", "a,b.c", []string{"a", "b", "c"}},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestLoad_RejectsBadArtifacts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    map[string]any
	}{
		{"zero max_len", map[string]any{
			"vocab": map[string]int{}, "weights": []float64{0}, "bias": 0.0, "max_len": 0, "pad_id": 0,
		}},
		{"pad out of range", map[string]any{
			"vocab": map[string]int{}, "weights": []float64{0}, "bias": 0.0, "max_len": 4, "pad_id": 5,
		}},
		{"vocab id out of range", map[string]any{
			"vocab": map[string]int{"bad": 9}, "weights": []float64{0}, "bias": 0.0, "max_len": 4, "pad_id": 0,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeArtifact(t, tc.a)); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestScore_SeparatesCleanAndViolatingText(t *testing.T) {
	t.Parallel()

	// pad id 0 carries zero weight; "bad" is heavily positive
	path := writeArtifact(t, map[string]any{
		"vocab":   map[string]int{"bad": 1, "good": 2},
		"weights": []float64{0, 6.0, -6.0},
		"bias":    -2.0,
		"max_len": 8,
		"pad_id":  0,
	})
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	hi, err := m.Score("this is bad bad text")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	lo, err := m.Score("this is good text")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if hi <= 0.55 {
		t.Fatalf("violating text P = %.3f, want > 0.55", hi)
	}
	if lo >= 0.55 {
		t.Fatalf("clean text P = %.3f, want < 0.55", lo)
	}
	if hi < 0 || hi > 1 || lo < 0 || lo > 1 {
		t.Fatalf("probabilities out of [0,1]: hi=%v lo=%v", hi, lo)
	}
}

func TestScore_TruncatesBeyondMaxLen(t *testing.T) {
	t.Parallel()

	path := writeArtifact(t, map[string]any{
		"vocab":   map[string]int{"bad": 1},
		"weights": []float64{0, 1.0},
		"bias":    0.0,
		"max_len": 2,
		"pad_id":  0,
	})
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// ten occurrences but only two fit the sequence
	ten, err := m.Score("bad bad bad bad bad bad bad bad bad bad")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	two, err := m.Score("bad bad")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if ten != two {
		t.Fatalf("truncation broken: P(ten)=%v P(two)=%v", ten, two)
	}
}

func TestScore_NilModelErrors(t *testing.T) {
	t.Parallel()

	var m *Model
	if _, err := m.Score("anything"); err == nil {
		t.Fatal("expected error from nil model")
	}
}
