package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// fakeTelegramClient implements the domain telegram.Client interface.
type fakeTelegramClient struct {
	sent     []string
	attempts int
	err      error
}

func (f *fakeTelegramClient) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	f.attempts++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

// fakeAPIClient implements the homework.Client interface.
type fakeAPIClient struct {
	raw      json.RawMessage
	err      error
	calls    int
	lastFrom int64
}

func (f *fakeAPIClient) FetchStatuses(ctx context.Context, fromTimestamp int64) (json.RawMessage, error) {
	f.calls++
	f.lastFrom = fromTimestamp
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

// fakeCheckpointRepo implements the checkpoint.Repository interface.
type fakeCheckpointRepo struct {
	saved   []int64
	saveErr error
}

func (f *fakeCheckpointRepo) Load(ctx context.Context) (int64, error) {
	if len(f.saved) == 0 {
		return 0, errors.New("poll checkpoint not found")
	}
	return f.saved[len(f.saved)-1], nil
}

func (f *fakeCheckpointRepo) Save(ctx context.Context, value int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, value)
	return nil
}
