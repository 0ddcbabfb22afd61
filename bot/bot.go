// Package bot is the Telegram delivery transport and conversation
// front-end around the extraction/generation/session core.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lecturequizbot/ai"
	"lecturequizbot/config"
	"lecturequizbot/database"
	"lecturequizbot/extract"
	"lecturequizbot/models"
	"lecturequizbot/ocr"
	"lecturequizbot/quiz"
	"lecturequizbot/session"
)

const (
	cmdStart   = "start"
	cmdCancel  = "cancel"
	cmdControl = "control"

	// Telegram poll limits the transport enforces on raw question text.
	maxPollQuestionRunes = 255
	maxPollOptionRunes   = 100
	maxPollOptions       = 10
)

// Bot wires Telegram updates into the quiz pipeline.
type Bot struct {
	api        *tgbotapi.BotAPI
	db         *database.DB
	store      *session.Store
	extractor  *extract.Extractor
	generator  *quiz.Generator
	normalizer *quiz.Normalizer
	cfg        *config.Config
	http       *http.Client
	log        logrus.FieldLogger
}

// New creates a new bot instance
func New(cfg *config.Config, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = os.Getenv("DEBUG") == "true"

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var ocrClient extract.OCR
	if cfg.OCRAPIKey != "" {
		ocrClient = ocr.NewClient(cfg.OCRAPIKey, log)
	} else {
		log.Warn("OCR_SPACE_API_KEY not set; scanned PDFs and images will not be readable")
	}

	llm := ai.NewClient(cfg.GroqAPIKey, cfg.GroqModel, log)

	return &Bot{
		api:        api,
		db:         db,
		store:      session.NewStore(),
		extractor:  extract.New(ocrClient, log),
		generator:  quiz.NewGenerator(llm, log),
		normalizer: quiz.NewNormalizer(),
		cfg:        cfg,
		http:       &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}, nil
}

// Close releases the bot's resources.
func (b *Bot) Close() error {
	return b.db.Close()
}

// Start runs the update loop until the updates channel closes.
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		case update.PollAnswer != nil:
			b.handlePollAnswer(update.PollAnswer)
		case update.Message != nil:
			b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	switch {
	case message.IsCommand():
		switch message.Command() {
		case cmdStart:
			b.handleStart(message)
		case cmdCancel:
			b.handleCancel(message)
		case cmdControl:
			b.handleControl(message)
		default:
			b.sendMessage(message.Chat.ID, b.text(msgUnknownCommand))
		}
	case message.Document != nil || len(message.Photo) > 0:
		b.handleIncomingFile(message)
	}
}

// authorize is the explicit allow/deny check run before every
// user-facing entry point. The admin is always allowed.
func (b *Bot) authorize(user *tgbotapi.User) (bool, models.UserStatus) {
	if user.ID == b.cfg.AdminID {
		return true, models.StatusAllowed
	}
	status, err := b.db.UserStatus(user.ID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", user.ID).Error("registry lookup failed")
		return false, ""
	}
	return status == models.StatusAllowed, status
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	allowed, status := b.authorize(message.From)
	if allowed {
		b.sendMessage(message.Chat.ID, b.text(msgWelcome))
		return
	}

	switch status {
	case models.StatusBanned:
		b.sendMessage(message.Chat.ID, b.text(msgBanned))
	case models.StatusPending:
		b.sendMessage(message.Chat.ID, b.text(msgPendingApproval))
	default:
		if err := b.db.RegisterPending(message.From.ID, message.From.UserName); err != nil {
			b.log.WithError(err).Error("failed to register pending user")
			return
		}
		b.logEvent(message.From, models.EventUserPending, "")
		b.sendMessage(message.Chat.ID, b.text(msgPendingApproval))
	}
}

func (b *Bot) handleCancel(message *tgbotapi.Message) {
	sess, ok := b.store.Get(message.Chat.ID)
	if !ok {
		b.sendMessage(message.Chat.ID, b.text(msgNoActiveQuiz))
		return
	}
	sess.Terminate()
	b.store.Drop(sess)
	b.sendMessage(message.Chat.ID, b.text(msgCancelDone))
}

func (b *Bot) handleIncomingFile(message *tgbotapi.Message) {
	allowed, _ := b.authorize(message.From)
	if !allowed {
		b.sendMessage(message.Chat.ID, b.text(msgNotAllowed))
		return
	}

	var (
		filename string
		fileID   string
		format   models.Format
	)
	if message.Document != nil {
		d := message.Document
		sizeMB := float64(d.FileSize) / (1024 * 1024)
		if int64(d.FileSize) > b.cfg.MaxFileMB*1024*1024 {
			b.sendMessage(message.Chat.ID, fmt.Sprintf(b.text(msgFileTooLarge), sizeMB, b.cfg.MaxFileMB))
			return
		}
		filename = d.FileName
		if filename == "" {
			filename = "file"
		}
		fileID = d.FileID
		format = models.FormatFromFilename(filename)
		if format == models.FormatUnknown {
			b.sendMessage(message.Chat.ID, b.text(msgUnsupportedFile))
			return
		}
	} else {
		// Telegram photos arrive as resolution variants; the last is the largest.
		photo := message.Photo[len(message.Photo)-1]
		filename = "photo.jpg"
		fileID = photo.FileID
		format = models.FormatImage
	}

	data, err := b.downloadFile(fileID)
	if err != nil {
		b.log.WithError(err).WithField("chat_id", message.Chat.ID).Error("file download failed")
		b.sendMessage(message.Chat.ID, b.text(msgExtractionFailed))
		return
	}

	doc := models.Document{
		ID:       uuid.NewString(),
		Filename: filename,
		Format:   format,
		Data:     data,
	}
	b.logEvent(message.From, models.EventFileSent, filename)
	b.log.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"doc_id":  doc.ID,
		"format":  format,
		"bytes":   len(data),
	}).Info("document received")

	// A new document replaces any live session for this conversation.
	b.store.Put(session.New(message.Chat.ID, message.From.ID, doc))

	msg := tgbotapi.NewMessage(message.Chat.ID, b.text(msgChooseContentLanguage))
	msg.ReplyMarkup = languageKeyboard("clang")
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("failed to send language keyboard")
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	// Acknowledge immediately to avoid "query is too old" errors.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.WithError(err).Debug("callback ack failed")
	}
	if callback.Message == nil {
		return
	}

	data := callback.Data
	switch {
	case strings.HasPrefix(data, "clang:"):
		b.handleContentLanguage(callback, strings.TrimPrefix(data, "clang:"))
	case strings.HasPrefix(data, "qlang:"):
		b.handleQuizLanguage(callback, strings.TrimPrefix(data, "qlang:"))
	default:
		b.handleAdminCallback(callback)
	}
}

func (b *Bot) handleContentLanguage(callback *tgbotapi.CallbackQuery, lang string) {
	chatID := callback.Message.Chat.ID
	sess, ok := b.store.Get(chatID)
	if !ok || !sess.ChooseContentLanguage(lang) {
		b.editMessage(chatID, callback.Message.MessageID, b.text(msgNoPendingFile))
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID,
		b.text(msgChooseQuizLanguage), languageKeyboard("qlang"))
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).Error("failed to send quiz language keyboard")
	}
}

func (b *Bot) handleQuizLanguage(callback *tgbotapi.CallbackQuery, lang string) {
	chatID := callback.Message.Chat.ID
	sess, ok := b.store.Get(chatID)
	if !ok || !sess.ChooseQuizLanguage(lang) {
		b.editMessage(chatID, callback.Message.MessageID, b.text(msgNoPendingFile))
		return
	}
	b.editMessage(chatID, callback.Message.MessageID, b.text(msgAnalyzing))

	// Generation must not block other conversations' updates.
	go b.runGeneration(sess)
}

func (b *Bot) handlePollAnswer(answer *tgbotapi.PollAnswer) {
	sess, _, ok := b.store.Resolve(answer.PollID)
	if !ok {
		// Stale poll from a cancelled or replaced session.
		return
	}

	chosen := -1
	if len(answer.OptionIDs) > 0 {
		chosen = answer.OptionIDs[0]
	}
	correct, ok := sess.RecordAnswer(answer.PollID, chosen)
	if !ok {
		return
	}

	details := "incorrect"
	if correct {
		details = "correct"
	}
	b.logEvent(&answer.User, models.EventQuizAnswer, details)

	b.deliverNext(sess)
}

// deliverNext advances the session's delivery loop and finalizes the
// quiz when the bank is exhausted.
func (b *Bot) deliverNext(sess *session.Session) {
	finished, score, total := sess.DeliverNext(context.Background(), b)
	if !finished {
		return
	}
	if b.store.Drop(sess) {
		if err := b.db.LogEvent(sess.UserID, "", models.EventQuizDone, fmt.Sprintf("%d/%d", score, total)); err != nil {
			b.log.WithError(err).Warn("failed to log quiz completion")
		}
		b.sendMessage(sess.ChatID, fmt.Sprintf(b.text(msgQuizDone), score, total))
	}
}

// SendQuizPoll implements session.PollSender over Telegram quiz polls.
// Truncation to platform limits happens here, not in the core.
func (b *Bot) SendQuizPoll(_ context.Context, chatID int64, q models.Question, lang string) (string, error) {
	options := q.Options
	if len(options) > maxPollOptions {
		options = options[:maxPollOptions]
	}
	truncated := make([]string, len(options))
	for i, o := range options {
		truncated[i] = truncateRunes(o, maxPollOptionRunes)
	}

	poll := tgbotapi.NewPoll(chatID, truncateRunes(q.Question, maxPollQuestionRunes), truncated...)
	poll.IsAnonymous = false
	poll.Type = "quiz"
	poll.CorrectOptionID = int64(q.Correct)
	poll.Explanation = uiText(lang, msgCorrectAnswer)

	msg, err := b.api.Send(poll)
	if err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Warn("poll delivery failed, item will be skipped")
		return "", err
	}
	if msg.Poll == nil {
		return "", errors.New("telegram returned a message without a poll")
	}
	return msg.Poll.ID, nil
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("failed to send message")
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("failed to edit message")
	}
}

func (b *Bot) logEvent(user *tgbotapi.User, eventType, details string) {
	if err := b.db.LogEvent(user.ID, user.UserName, eventType, details); err != nil {
		b.log.WithError(err).WithField("event", eventType).Warn("failed to log event")
	}
}

func (b *Bot) text(id msgID) string {
	return uiText(b.cfg.UILanguage, id)
}

func languageKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("العربية", prefix+":ar"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English", prefix+":en"),
		),
	)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
