package quiz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitChunks(t *testing.T) {
	t.Run("empty text yields no chunks", func(t *testing.T) {
		if got := SplitChunks("   \n  ", 100); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("short text is a single chunk", func(t *testing.T) {
		got := SplitChunks("line one\nline two", 100)
		if len(got) != 1 || got[0] != "line one\nline two" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("blank lines are discarded", func(t *testing.T) {
		got := SplitChunks("a\n\n\nb", 100)
		if len(got) != 1 || got[0] != "a\nb" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("greedy accumulation respects budget", func(t *testing.T) {
		// Three 10-rune lines with a budget of 25: two fit in the first
		// chunk (10+1+10), the third starts a new one.
		line := strings.Repeat("x", 10)
		got := SplitChunks(strings.Join([]string{line, line, line}, "\n"), 25)
		if len(got) != 2 {
			t.Fatalf("chunks = %d, want 2 (%q)", len(got), got)
		}
		if got[0] != line+"\n"+line || got[1] != line {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no chunk exceeds budget", func(t *testing.T) {
		var lines []string
		for i := 0; i < 40; i++ {
			lines = append(lines, strings.Repeat("م", 7+i%13))
		}
		for _, chunk := range SplitChunks(strings.Join(lines, "\n"), 50) {
			if n := utf8.RuneCountInString(chunk); n > 50 {
				t.Errorf("chunk of %d runes exceeds budget", n)
			}
		}
	})

	t.Run("oversized line is hard wrapped", func(t *testing.T) {
		got := SplitChunks(strings.Repeat("y", 95), 30)
		if len(got) != 4 {
			t.Fatalf("chunks = %d, want 4", len(got))
		}
		for i, chunk := range got {
			if n := utf8.RuneCountInString(chunk); n > 30 {
				t.Errorf("chunk %d has %d runes", i, n)
			}
		}
		if strings.Join(got, "") != strings.Repeat("y", 95) {
			t.Error("hard wrap lost content")
		}
	})

	t.Run("unbounded mode is explicit", func(t *testing.T) {
		text := strings.Repeat("z", 20000)
		got := SplitChunks(text, 0)
		if len(got) != 1 || got[0] != text {
			t.Errorf("budget 0 must yield the whole text as one chunk")
		}
	})
}
