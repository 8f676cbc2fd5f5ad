package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService pushes reminder messages to users who linked a chat.
// A nil service (no token configured) silently drops every send.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg][init] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty (chatID=%d)", chatID)
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}
