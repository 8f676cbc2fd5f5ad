package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// ReminderService assembles each linked user's open chores for a date and
// pushes them over Telegram. It is invoked by an external scheduler through
// the HTTP surface; there is no clock in here.
type ReminderService interface {
	SendDailyReminders(ctx context.Context, date time.Time) (sent int, err error)
}

type reminderService struct {
	users     repositories.UserRepository
	instances InstanceService
	tg        *TelegramService
}

func NewReminderService(users repositories.UserRepository, instances InstanceService, tg *TelegramService) ReminderService {
	return &reminderService{users: users, instances: instances, tg: tg}
}

func (s *reminderService) SendDailyReminders(ctx context.Context, date time.Time) (int, error) {
	if s.tg == nil {
		log.Printf("[reminder][skip] telegram not configured")
		return 0, nil
	}

	users, err := s.users.ListWithTelegram(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range users {
		u := &users[i]
		views, err := s.instances.ListViewsForDate(ctx, u.ID, date)
		if err != nil {
			log.Printf("[reminder][warn] list tasks userID=%d: %v", u.ID, err)
			continue
		}

		open := []models.TaskView{}
		for _, v := range views {
			if !v.Completed {
				open = append(open, v)
			}
		}
		if len(open) == 0 {
			continue
		}

		if err := s.tg.SendMessage(u.TelegramChatID, formatReminder(u.DisplayName, open)); err != nil {
			log.Printf("[reminder][warn] send userID=%d: %v", u.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func formatReminder(displayName string, open []models.TaskView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧹 <b>%s</b>, %d chores are waiting:\n", displayName, len(open))
	for _, v := range open {
		fmt.Fprintf(&b, "• %s <code>%s</code>\n", v.Title, v.Category)
	}
	return b.String()
}
