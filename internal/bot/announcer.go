// Package bot publishes deal announcements to a Telegram channel.
package bot

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"dealpost/internal/domain"
)

// Announcer sends deal messages to one channel.
type Announcer struct {
	bot    *tgbot.Bot
	chatID string
	log    logrus.FieldLogger
}

// NewAnnouncer creates an announcer for chatID. The token is not verified up
// front; the send call is the only request made.
func NewAnnouncer(token, chatID string, logger logrus.FieldLogger, opts ...tgbot.Option) (*Announcer, error) {
	log := logger.WithField("component", "announcer")

	opts = append([]tgbot.Option{tgbot.WithSkipGetMe()}, opts...)
	b, err := tgbot.New(token, opts...)
	if err != nil {
		log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Announcer{bot: b, chatID: chatID, log: log}, nil
}

// Announce sends msg as a photo with caption when it carries an image,
// otherwise as a text message.
func (a *Announcer) Announce(ctx context.Context, msg Message) error {
	log := a.log.WithField("chat_id", a.chatID)

	var err error
	if msg.ImageURL != "" {
		log.Info("Sending photo announcement")
		_, err = a.bot.SendPhoto(ctx, &tgbot.SendPhotoParams{
			ChatID:  a.chatID,
			Photo:   &models.InputFileString{Data: msg.ImageURL},
			Caption: msg.Caption(),
		})
	} else {
		log.Info("Sending text announcement")
		_, err = a.bot.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: a.chatID,
			Text:   msg.Text,
		})
	}
	if err != nil {
		return &domain.AnnouncementTransportError{Err: err}
	}

	log.Info("Announcement sent")
	return nil
}
