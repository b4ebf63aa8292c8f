package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quizbot/internal/domain"
	"quizbot/internal/engine"
)

// The Bot is the engine's domain.Presenter: every quiz prompt renders as
// a Telegram message, selections as inline keyboards.

func (b *Bot) JoinPrompt(ctx context.Context, userID int64) error {
	msg := tgbotapi.NewMessage(userID,
		fmt.Sprintf("To play the quiz, join %s first, then press the button below.", b.cfg.Channel))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("I've joined ✅", engine.CallbackStart),
		),
	)
	return b.send(msg)
}

func (b *Bot) ReadyPrompt(ctx context.Context, userID int64) error {
	msg := tgbotapi.NewMessage(userID, "Ready for a quiz?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("I'm ready 🎯", engine.CallbackReady),
		),
	)
	return b.send(msg)
}

func (b *Bot) SubjectList(ctx context.Context, userID int64, subjects []string) error {
	msg := tgbotapi.NewMessage(userID, "Pick a subject:")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, subject := range subjects {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(subject, engine.SubjectCallback(subject)),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return b.send(msg)
}

func (b *Bot) TopicList(ctx context.Context, userID int64, subject string, topics []string) error {
	msg := tgbotapi.NewMessage(userID, fmt.Sprintf("Pick a topic in %s:", subject))
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, topic := range topics {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(topic, engine.TopicCallback(topic)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎲 Random", engine.TopicCallback(domain.TopicRandom)),
	))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return b.send(msg)
}

func (b *Bot) QuestionCard(ctx context.Context, userID int64, number, total int, q domain.Question) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "❓ Question %d/%d\n\n%s\n", number, total, q.Text)
	for _, l := range domain.Letters {
		fmt.Fprintf(&sb, "\n%s. %s", l, q.OptionText(l))
	}
	msg := tgbotapi.NewMessage(userID, sb.String())

	// Exactly four mutually exclusive choices.
	var buttons []tgbotapi.InlineKeyboardButton
	for _, l := range domain.Letters {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(string(l), engine.AnswerCallback(l)))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	return b.send(msg)
}

func (b *Bot) AnswerFeedback(ctx context.Context, userID int64, correct bool, answer domain.Letter, answerText string) error {
	text := "✅ Correct!"
	if !correct {
		text = fmt.Sprintf("❌ Wrong! The correct answer is %s. %s", answer, answerText)
	}
	return b.send(tgbotapi.NewMessage(userID, text))
}

func (b *Bot) QuizSummary(ctx context.Context, userID int64, score, total int) error {
	percentage := 0
	if total > 0 {
		percentage = score * 100 / total
	}
	msg := tgbotapi.NewMessage(userID,
		fmt.Sprintf("🏁 Quiz finished!\n\n📊 Score: %d/%d\n📈 Correct: %d%%", score, total, percentage))
	msg.ReplyMarkup = postQuizKeyboard()
	return b.send(msg)
}

func (b *Bot) PostQuizMenu(ctx context.Context, userID int64) error {
	msg := tgbotapi.NewMessage(userID, "What next?")
	msg.ReplyMarkup = postQuizKeyboard()
	return b.send(msg)
}

func (b *Bot) ReportPrompt(ctx context.Context, userID int64) error {
	return b.send(tgbotapi.NewMessage(userID,
		"Describe the problem with the quiz (you can attach a screenshot)."))
}

func (b *Bot) Notice(ctx context.Context, userID int64, text string) error {
	return b.send(tgbotapi.NewMessage(userID, text))
}

func postQuizKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Start again", engine.CallbackAgain),
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Report issue", engine.CallbackReport),
		),
	)
}
