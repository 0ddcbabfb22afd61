package extract

import (
	"regexp"
	"strings"
)

var (
	invisibleMarks = strings.NewReplacer(
		"‏", " ", // RTL mark
		"‎", " ", // LTR mark
		"​", " ", // zero-width space
	)
	horizontalRuns = regexp.MustCompile("[\t ]+")
	spaceRuns      = regexp.MustCompile(" {2,}")
	blankLineRuns  = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes whitespace and strips invisible directionality
// marks, which would otherwise inflate the apparent length of scanned
// Arabic documents. Line boundaries are preserved for the chunk
// splitter.
func CleanText(t string) string {
	t = invisibleMarks.Replace(t)
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = horizontalRuns.ReplaceAllString(t, " ")
	t = spaceRuns.ReplaceAllString(t, " ")

	lines := strings.Split(t, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	t = strings.Join(lines, "\n")

	t = blankLineRuns.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}
