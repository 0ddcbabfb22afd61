// Package quiz turns extracted lecture text into a deduplicated bank of
// validated quiz questions.
package quiz

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkBudget caps the text handed to a single generation call.
// Oversized calls degrade both quality and latency of the model.
const DefaultChunkBudget = 4500

// SplitChunks splits cleaned text into chunks of at most budget runes,
// greedily accumulating non-blank lines and never splitting a line
// unless the line alone exceeds the budget. A budget <= 0 is the
// explicit opt-out: the whole text becomes a single chunk.
func SplitChunks(text string, budget int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if budget <= 0 {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, seg := range hardWrap(line, budget) {
			segLen := utf8.RuneCountInString(seg)
			if curLen > 0 && curLen+1+segLen > budget {
				flush()
			}
			if curLen > 0 {
				cur.WriteByte('\n')
				curLen++
			}
			cur.WriteString(seg)
			curLen += segLen
		}
	}
	flush()
	return chunks
}

// hardWrap cuts a single line that exceeds the budget at rune
// boundaries so that no chunk can grow past the budget.
func hardWrap(line string, budget int) []string {
	if utf8.RuneCountInString(line) <= budget {
		return []string{line}
	}
	runes := []rune(line)
	var out []string
	for len(runes) > budget {
		out = append(out, string(runes[:budget]))
		runes = runes[budget:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
