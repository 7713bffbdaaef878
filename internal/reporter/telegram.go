package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendRoleSummary reports one finished role crawl.
func (t *TelegramReporter) SendRoleSummary(role string, collected, persisted int, csvPath string) error {
	text := fmt.Sprintf(
		"📦 <b>%s</b>\n"+
			"🔍 Collected: %d\n"+
			"💾 Persisted: %d unique rows\n"+
			"📁 %s",
		role, collected, persisted, csvPath,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Crawl Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
