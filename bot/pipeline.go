package bot

import (
	"context"

	"github.com/sirupsen/logrus"

	"lecturequizbot/quiz"
	"lecturequizbot/session"
)

// runGeneration executes the extraction-to-bank pipeline for one
// session. It runs in its own goroutine; the session is only advanced
// while it is still the conversation's live session, so results of a
// cancelled or replaced session are discarded here.
func (b *Bot) runGeneration(sess *session.Session) {
	contentLang, quizLang := sess.Languages()
	doc := sess.Document
	doc.Language = contentLang

	log := b.log.WithFields(logrus.Fields{
		"chat_id": sess.ChatID,
		"doc_id":  doc.ID,
	})

	ctx := context.Background()
	result := b.extractor.Extract(ctx, doc)
	if !result.Usable() {
		log.WithField("source", result.Source).Info("extraction failed or text below usability threshold")
		if b.store.Drop(sess) {
			sess.Terminate()
			b.sendMessage(sess.ChatID, b.text(msgExtractionFailed))
		}
		return
	}

	if cur, ok := b.store.Get(sess.ChatID); ok && cur == sess {
		b.sendMessage(sess.ChatID, b.text(msgGenerating))
	}

	chunks := quiz.SplitChunks(result.Text, b.cfg.ChunkBudget)
	candidates := b.generator.Generate(ctx, chunks, quizLang)
	bank := b.normalizer.Normalize(candidates, quizLang, b.cfg.TargetTotal)

	started := false
	live := b.store.Commit(sess, func() {
		started = sess.BeginDelivery(bank)
	})
	if !live {
		log.Info("session cancelled during generation, discarding result")
		return
	}
	if !started {
		log.WithField("candidates", len(candidates)).Info("no usable questions after normalization")
		if b.store.Drop(sess) {
			sess.Terminate()
			b.sendMessage(sess.ChatID, b.text(msgGenerationEmpty))
		}
		return
	}

	log.WithFields(logrus.Fields{
		"source":    result.Source,
		"chunks":    len(chunks),
		"questions": len(bank),
	}).Info("quiz ready, starting delivery")

	b.deliverNext(sess)
}
