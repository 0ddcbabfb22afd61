package quiz

import (
	"sort"
	"testing"

	"lecturequizbot/models"
)

func mcq(question string, options []string, correct int) models.Candidate {
	return models.Candidate{Type: "mcq", Question: question, Options: options, Correct: correct}
}

func bankKeys(bank []models.Question) []string {
	keys := make([]string, len(bank))
	for i, q := range bank {
		keys[i] = string(q.Type) + "\x00" + q.Question
	}
	sort.Strings(keys)
	return keys
}

func TestNormalizeTrueFalse(t *testing.T) {
	t.Run("canonical options per language", func(t *testing.T) {
		for _, tt := range []struct {
			lang string
			want []string
		}{
			{"ar", []string{"صح", "خطأ"}},
			{"en", []string{"True", "False"}},
		} {
			bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
				{Type: "tf", Question: "Water boils at 100C?", Options: []string{"whatever", "the", "model", "said"}, Correct: 0},
			}, tt.lang, 0)
			if len(bank) != 1 {
				t.Fatalf("lang %s: bank size = %d", tt.lang, len(bank))
			}
			q := bank[0]
			if len(q.Options) != 2 || q.Options[0] != tt.want[0] || q.Options[1] != tt.want[1] {
				t.Errorf("lang %s: options = %v, want %v", tt.lang, q.Options, tt.want)
			}
		}
	})

	t.Run("correct clamped into {0,1}", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			{Type: "tf", Question: "q1", Correct: 7},
			{Type: "tf", Question: "q2", Correct: -3},
		}, "en", 0)
		if len(bank) != 2 {
			t.Fatalf("bank size = %d", len(bank))
		}
		for _, q := range bank {
			if q.Correct != 0 && q.Correct != 1 {
				t.Errorf("tf correct = %d", q.Correct)
			}
		}
	})
}

func TestNormalizeMCQ(t *testing.T) {
	t.Run("under-supplied options padded to four", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("What is X?", []string{"A", "B"}, 0),
		}, "en", 0)
		if len(bank) != 1 {
			t.Fatalf("bank size = %d", len(bank))
		}
		q := bank[0]
		if len(q.Options) != 4 {
			t.Fatalf("options = %v", q.Options)
		}
		if q.Options[2] != placeholderOption || q.Options[3] != placeholderOption {
			t.Errorf("padding = %v", q.Options[2:])
		}
	})

	t.Run("over-supplied options truncated", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("q", []string{"A", "B", "C", "D", "E", "F"}, 5),
		}, "en", 0)
		q := bank[0]
		if len(q.Options) != 4 {
			t.Fatalf("options = %v", q.Options)
		}
		if q.Correct < 0 || q.Correct > 3 {
			t.Errorf("correct = %d, want within [0,3]", q.Correct)
		}
	})

	t.Run("negative correct clamped to zero", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("q", []string{"A", "B", "C", "D"}, -1),
		}, "en", 0)
		if bank[0].Correct != 0 {
			t.Errorf("correct = %d", bank[0].Correct)
		}
	})

	t.Run("unknown type treated as mcq", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			{Type: "essay", Question: "q", Options: []string{"A", "B", "C"}, Correct: 1},
		}, "en", 0)
		if len(bank) != 1 || bank[0].Type != models.TypeMCQ {
			t.Errorf("got %+v", bank)
		}
	})
}

func TestNormalizeRejects(t *testing.T) {
	bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
		mcq("", []string{"A", "B", "C", "D"}, 0),      // no question text
		mcq("   ", []string{"A", "B", "C", "D"}, 0),   // whitespace question
		mcq("one option", []string{"A"}, 0),           // too few options
		mcq("blank options", []string{" ", "", "A"}, 0), // one real option left
	}, "en", 0)
	if len(bank) != 0 {
		t.Errorf("bank = %+v, want all rejected", bank)
	}
}

func TestNormalizeDedup(t *testing.T) {
	t.Run("same question from two chunks survives once", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("What is X?", []string{"A", "B"}, 0),
			mcq("What is X?", []string{"A", "B"}, 0),
		}, "en", 0)
		if len(bank) != 1 {
			t.Errorf("bank size = %d, want 1", len(bank))
		}
	})

	t.Run("same text different type both survive", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("Is water wet?", []string{"A", "B", "C", "D"}, 0),
			{Type: "tf", Question: "Is water wet?", Correct: 0},
		}, "en", 0)
		if len(bank) != 2 {
			t.Errorf("bank size = %d, want 2", len(bank))
		}
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize([]models.Candidate{
			mcq("q", []string{"first", "set", "of", "options"}, 0),
			mcq("q", []string{"second", "set", "of", "options"}, 1),
		}, "en", 0)
		if len(bank) != 1 || bank[0].Options[0] != "first" {
			t.Errorf("got %+v", bank)
		}
	})

	t.Run("idempotent over its own output", func(t *testing.T) {
		candidates := []models.Candidate{
			mcq("q1", []string{"A", "B", "C", "D"}, 0),
			mcq("q2", []string{"A", "B", "C", "D"}, 1),
			{Type: "tf", Question: "q3", Correct: 1},
		}
		n := NewNormalizerWithSeed(42)
		first := n.Normalize(candidates, "en", 0)

		again := make([]models.Candidate, len(first))
		for i, q := range first {
			again[i] = models.Candidate{Type: string(q.Type), Question: q.Question, Options: q.Options, Correct: q.Correct}
		}
		second := NewNormalizerWithSeed(7).Normalize(again, "en", 0)

		if len(second) != len(first) {
			t.Fatalf("re-normalization changed size: %d vs %d", len(second), len(first))
		}
		f, s := bankKeys(first), bankKeys(second)
		for i := range f {
			if f[i] != s[i] {
				t.Errorf("re-normalization changed contents: %q vs %q", f[i], s[i])
			}
		}
	})
}

func TestNormalizeSoftCap(t *testing.T) {
	var candidates []models.Candidate
	for _, q := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, mcq(q, []string{"A", "B", "C", "D"}, 0))
	}

	t.Run("cap truncates", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize(candidates, "en", 3)
		if len(bank) != 3 {
			t.Errorf("bank size = %d, want 3", len(bank))
		}
	})

	t.Run("fewer than requested is not an error", func(t *testing.T) {
		bank := NewNormalizerWithSeed(1).Normalize(candidates[:2], "en", 10)
		if len(bank) != 2 {
			t.Errorf("bank size = %d, want 2", len(bank))
		}
	})
}

func TestNormalizeShuffles(t *testing.T) {
	var candidates []models.Candidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, mcq(string(rune('a'+i)), []string{"A", "B", "C", "D"}, 0))
	}

	inOrder := 0
	bank := NewNormalizerWithSeed(99).Normalize(candidates, "en", 0)
	for i, q := range bank {
		if q.Question == candidates[i].Question {
			inOrder++
		}
	}
	if inOrder == len(candidates) {
		t.Error("bank came back in input order; shuffle did not run")
	}
}
