package quiz

import (
	"math/rand"
	"strings"
	"time"

	"lecturequizbot/models"
)

const (
	mcqOptionCount = 4

	// placeholderOption fills under-supplied MCQ option lists. A padded
	// question is trivially guessable since the placeholder is never the
	// correct answer; dropping such candidates instead would shrink the
	// bank, so padding is kept as the lesser evil.
	placeholderOption = "—"
)

// TrueFalseOptions returns the canonical true/false option pair for the
// given quiz language.
func TrueFalseOptions(lang string) []string {
	if strings.HasPrefix(strings.ToLower(lang), "ar") {
		return []string{"صح", "خطأ"}
	}
	return []string{"True", "False"}
}

// Normalizer validates and canonicalizes raw candidates into a
// deduplicated, shuffled question bank.
type Normalizer struct {
	rng *rand.Rand
}

// NewNormalizer creates a Normalizer with a time-seeded shuffle.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithSeed(time.Now().UnixNano())
}

// NewNormalizerWithSeed creates a Normalizer with a deterministic
// shuffle order.
func NewNormalizerWithSeed(seed int64) *Normalizer {
	return &Normalizer{rng: rand.New(rand.NewSource(seed))}
}

// Normalize drops invalid candidates, canonicalizes the rest,
// deduplicates on (type, question text) with the first occurrence
// winning, shuffles uniformly and applies the optional soft cap. Fewer
// questions than the cap is not an error; the caller decides whether an
// empty result is user-visible.
func (n *Normalizer) Normalize(candidates []models.Candidate, lang string, limit int) []models.Question {
	var bank []models.Question
	seen := make(map[string]struct{})

	for _, c := range candidates {
		q, ok := canonicalize(c, lang)
		if !ok {
			continue
		}
		key := string(q.Type) + "\x00" + q.Question
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		bank = append(bank, q)
	}

	n.rng.Shuffle(len(bank), func(i, j int) {
		bank[i], bank[j] = bank[j], bank[i]
	})

	if limit > 0 && len(bank) > limit {
		bank = bank[:limit]
	}
	return bank
}

func canonicalize(c models.Candidate, lang string) (models.Question, bool) {
	question := strings.TrimSpace(c.Question)
	if question == "" {
		return models.Question{}, false
	}

	// Unknown type tags are treated as MCQ rather than rejected.
	qType := models.QuestionType(strings.ToLower(strings.TrimSpace(c.Type)))
	if qType != models.TypeTrueFalse {
		qType = models.TypeMCQ
	}

	var options []string
	for _, o := range c.Options {
		if s := strings.TrimSpace(o); s != "" {
			options = append(options, s)
		}
	}

	if qType == models.TypeTrueFalse {
		// The model's own option strings are discarded in favor of the
		// canonical pair.
		options = TrueFalseOptions(lang)
	} else {
		if len(options) < 2 {
			return models.Question{}, false
		}
		if len(options) > mcqOptionCount {
			options = options[:mcqOptionCount]
		}
		for len(options) < mcqOptionCount {
			options = append(options, placeholderOption)
		}
	}

	correct := c.Correct
	if correct < 0 {
		correct = 0
	}
	if correct > len(options)-1 {
		correct = len(options) - 1
	}

	return models.Question{
		Type:     qType,
		Question: question,
		Options:  options,
		Correct:  correct,
	}, true
}
