package ai

import "testing"

func TestParseCandidates(t *testing.T) {
	itemsJSON := `{"items":[{"type":"mcq","question":"What is X?","options":["A","B","C","D"],"correct":2}]}`

	t.Run("documented items shape", func(t *testing.T) {
		got, err := parseCandidates(itemsJSON)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("candidates = %d", len(got))
		}
		c := got[0]
		if c.Type != "mcq" || c.Question != "What is X?" || c.Correct != 2 || len(c.Options) != 4 {
			t.Errorf("candidate = %+v", c)
		}
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		got, err := parseCandidates("\n  " + itemsJSON + "  \n")
		if err != nil || len(got) != 1 {
			t.Errorf("candidates = %d, err = %v", len(got), err)
		}
	})

	t.Run("questions key variant", func(t *testing.T) {
		got, err := parseCandidates(`{"questions":[{"type":"tf","question":"q","options":["True","False"],"correct":1}]}`)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Type != "tf" {
			t.Errorf("candidates = %+v", got)
		}
	})

	t.Run("bare array variant", func(t *testing.T) {
		got, err := parseCandidates(`[{"type":"mcq","question":"q","options":["A","B"],"correct":0}]`)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Errorf("candidates = %+v", got)
		}
	})

	t.Run("malformed payloads rejected", func(t *testing.T) {
		for _, content := range []string{
			"",
			"not json at all",
			`{"items":"oops"}`,
			`{"unrelated":true}`,
			`"just a string"`,
		} {
			if got, err := parseCandidates(content); err == nil {
				t.Errorf("content %q: parsed %+v, want error", content, got)
			}
		}
	})
}

func TestLanguageName(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"ar", "Arabic"},
		{"AR", "Arabic"},
		{"arabic", "Arabic"},
		{"en", "English"},
		{"", "English"},
		{"de", "English"},
	} {
		if got := languageName(tt.in); got != tt.want {
			t.Errorf("languageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
