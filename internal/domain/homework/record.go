package homework

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Record is a single homework entry from the status API. The upstream
// contract is loose, so fields are validated in ParseStatus rather than
// at decode time.
type Record struct {
	Status      string `json:"status"`
	Name        string `json:"homework_name"`
	DateUpdated string `json:"date_updated,omitempty"`
}

// StatusFeed is one validated API response. An empty Homeworks slice is a
// legitimate outcome (nothing new since the checkpoint), not an error.
type StatusFeed struct {
	Homeworks   []Record
	CurrentDate int64
}

// Client defines the operations for fetching homework statuses from the
// review API. This decouples the poll service from the HTTP transport.
type Client interface {
	// FetchStatuses requests all status changes observed after fromTimestamp
	// (unix seconds). The returned bytes are guaranteed to be valid JSON.
	FetchStatuses(ctx context.Context, fromTimestamp int64) (json.RawMessage, error)
}

var (
	ErrMissingStatus = errors.New("no homework status found in API response")
	ErrUnknownStatus = errors.New("undocumented homework status found in API response")
	ErrMissingTitle  = errors.New("no homework title found in API response")
)

// homeworkVerdicts maps the closed set of review statuses to display text.
var homeworkVerdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

// ParseStatus converts a homework record into the notification text.
// A record with an unrecognized status never produces a message.
func ParseStatus(rec Record) (string, error) {
	if rec.Status == "" {
		return "", fmt.Errorf("%w: %+v", ErrMissingStatus, rec)
	}
	verdict, ok := homeworkVerdicts[rec.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, rec.Status)
	}
	if rec.Name == "" {
		return "", fmt.Errorf("%w: %+v", ErrMissingTitle, rec)
	}
	return fmt.Sprintf("Изменился статус проверки работы %q. %s", rec.Name, verdict), nil
}
