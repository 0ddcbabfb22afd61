package quiz

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"lecturequizbot/models"
)

// maxConcurrentCalls bounds how many generation calls may be in flight
// for one document at a time.
const maxConcurrentCalls = 4

// ChunkGenerator is the LLM collaborator: one call per text chunk.
type ChunkGenerator interface {
	GenerateQuestions(ctx context.Context, chunk, lang string) ([]models.Candidate, error)
}

// Generator fans chunk generation calls out to the LLM and aggregates
// the raw candidates in chunk order.
type Generator struct {
	llm ChunkGenerator
	log logrus.FieldLogger
}

// NewGenerator creates a Generator on top of the given LLM collaborator.
func NewGenerator(llm ChunkGenerator, log logrus.FieldLogger) *Generator {
	return &Generator{llm: llm, log: log}
}

// Generate issues one generation call per chunk. Calls run concurrently
// under a bounded semaphore; each result lands in its chunk's slot, so
// the aggregated order is deterministic regardless of completion order.
// A chunk whose call fails or returns malformed output contributes zero
// candidates and never fails the document.
func (g *Generator) Generate(ctx context.Context, chunks []string, lang string) []models.Candidate {
	results := make([][]models.Candidate, len(chunks))
	sem := make(chan struct{}, maxConcurrentCalls)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			candidates, err := g.llm.GenerateQuestions(ctx, chunk, lang)
			if err != nil {
				g.log.WithField("chunk", i).WithError(err).Warn("chunk generation failed, contributing zero candidates")
				return
			}
			results[i] = candidates
		}(i, chunk)
	}
	wg.Wait()

	var all []models.Candidate
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
