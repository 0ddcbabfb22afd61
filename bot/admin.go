package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lecturequizbot/models"
)

// handleControl opens the admin control panel.
func (b *Bot) handleControl(message *tgbotapi.Message) {
	if message.From.ID != b.cfg.AdminID {
		b.sendMessage(message.Chat.ID, b.text(msgAdminOnly))
		return
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "لوحة التحكم الرئيسية:")
	msg.ReplyMarkup = controlPanelKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("failed to send control panel")
	}
}

func controlPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("المستخدمون المصرح لهم", "show_allowed")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("المستخدمون المعلقون", "show_pending")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("الإحصائيات", "stats")),
	)
}

func (b *Bot) handleAdminCallback(callback *tgbotapi.CallbackQuery) {
	if callback.From.ID != b.cfg.AdminID {
		return
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	switch {
	case data == "show_allowed":
		b.showUsers(chatID, messageID, models.StatusAllowed)
	case data == "show_pending":
		b.showUsers(chatID, messageID, models.StatusPending)
	case data == "stats":
		b.showStats(chatID, messageID)
	case data == "back":
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "لوحة التحكم الرئيسية:", controlPanelKeyboard())
		if _, err := b.api.Send(edit); err != nil {
			b.log.WithError(err).Error("failed to edit control panel")
		}
	case strings.HasPrefix(data, "user:"):
		b.showUserDetails(chatID, messageID, data[len("user:"):])
	case strings.HasPrefix(data, "approve:"):
		b.decideUser(callback, data[len("approve:"):], models.StatusAllowed)
	case strings.HasPrefix(data, "reject:"):
		b.decideUser(callback, data[len("reject:"):], models.StatusBanned)
	}
}

func (b *Bot) showUsers(chatID int64, messageID int, status models.UserStatus) {
	users, err := b.db.UsersByStatus(status)
	if err != nil {
		b.log.WithError(err).Error("failed to list users")
		return
	}

	if status == models.StatusPending {
		if len(users) == 0 {
			b.editMessage(chatID, messageID, "لا يوجد مستخدمون معلقون.")
			return
		}
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, u := range users {
			id := strconv.FormatInt(u.ID, 10)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("قبول "+userLabel(u), "approve:"+id),
				tgbotapi.NewInlineKeyboardButtonData("رفض "+userLabel(u), "reject:"+id),
			))
		}
		rows = append(rows, backRow())
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "المستخدمون المعلقون:",
			tgbotapi.NewInlineKeyboardMarkup(rows...))
		if _, err := b.api.Send(edit); err != nil {
			b.log.WithError(err).Error("failed to show pending users")
		}
		return
	}

	if len(users) == 0 {
		b.editMessage(chatID, messageID, "لا يوجد مستخدمون مصرح لهم.")
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range users {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(userLabel(u), "user:"+strconv.FormatInt(u.ID, 10)),
		))
	}
	rows = append(rows, backRow())
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		"المستخدمون المصرح لهم (اضغط لرؤية التفاصيل):", tgbotapi.NewInlineKeyboardMarkup(rows...))
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).Error("failed to show allowed users")
	}
}

func (b *Bot) showStats(chatID int64, messageID int) {
	allowed, pending, banned, err := b.db.CountByStatus()
	if err != nil {
		b.log.WithError(err).Error("failed to count users")
		return
	}
	text := fmt.Sprintf("إحصائيات المستخدمين:\nمصرح لهم: %d\nمعلقون: %d\nمحظورون: %d",
		allowed, pending, banned)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text,
		tgbotapi.NewInlineKeyboardMarkup(backRow()))
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).Error("failed to show stats")
	}
}

func (b *Bot) showUserDetails(chatID int64, messageID int, idStr string) {
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}

	correct, incorrect, err := b.db.AnswerStats(userID)
	if err != nil {
		b.log.WithError(err).Error("failed to load answer stats")
		return
	}
	events, err := b.db.RecentEvents(userID, 10)
	if err != nil {
		b.log.WithError(err).Error("failed to load recent events")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "تفاصيل المستخدم %d:\n", userID)
	fmt.Fprintf(&sb, "إجابات صحيحة: %d\nإجابات خاطئة: %d\n", correct, incorrect)
	if len(events) == 0 {
		sb.WriteString("لا توجد أحداث مسجلة.")
	} else {
		sb.WriteString("آخر الأحداث:\n")
		for _, e := range events {
			ts := time.Unix(e.Timestamp, 0).UTC().Format("2006-01-02 15:04")
			fmt.Fprintf(&sb, "- %s: %s (%s)\n", ts, e.Type, e.Details)
		}
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, sb.String(),
		tgbotapi.NewInlineKeyboardMarkup(backRow()))
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).Error("failed to show user details")
	}
}

func (b *Bot) decideUser(callback *tgbotapi.CallbackQuery, idStr string, status models.UserStatus) {
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}
	if err := b.db.SetUserStatus(userID, status); err != nil {
		b.log.WithError(err).Error("failed to update user status")
		return
	}

	event := models.EventUserApproved
	text := fmt.Sprintf("تم قبول المستخدم %d", userID)
	if status == models.StatusBanned {
		event = models.EventUserRejected
		text = fmt.Sprintf("تم رفض المستخدم %d", userID)
	}
	if err := b.db.LogEvent(userID, "", event, ""); err != nil {
		b.log.WithError(err).Warn("failed to log approval event")
	}
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text)
}

func userLabel(u models.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("العودة", "back"))
}
