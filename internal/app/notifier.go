// internal/app/notifier.go
package app

import (
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// ErrDeliveryFailed marks a Telegram send failure. The poll loop must never
// try to notify about this error itself, only log it.
var ErrDeliveryFailed = fmt.Errorf("error sending message from bot")

// Notifier delivers a message to the configured chat.
type Notifier interface {
	// Notify sends text unless it is identical to the last delivered message.
	// delivered reports whether an external send actually happened.
	Notify(text string) (delivered bool, err error)
}

// DedupNotifier wraps the Telegram client and suppresses sends when the
// message equals the last one successfully delivered. Each call results in
// exactly zero or one external sends.
type DedupNotifier struct {
	client      domainTelegram.Client
	chatID      int64
	logger      *logrus.Entry
	lastMessage string
}

func NewDedupNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *DedupNotifier {
	return &DedupNotifier{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

func (n *DedupNotifier) Notify(text string) (bool, error) {
	if text == n.lastMessage {
		n.logger.Debugf("Message identical to the previous one, send suppressed: %q", text)
		return false, nil
	}

	n.logger.Infof("Bot sends a message: %q", text)
	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		return false, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	// Updated only after a confirmed send.
	n.lastMessage = text
	n.logger.Infof("Bot sent a message: %q", text)
	return true, nil
}
