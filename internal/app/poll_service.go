// internal/app/poll_service.go
package app

import (
	"context"
	"fmt"

	"homework_status_bot/internal/domain/checkpoint"
	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// RecordSelection is the deterministic rule for picking one record out of a
// multi-record response. The upstream API has been observed returning both
// orderings across iterations, so the rule is explicit configuration rather
// than a guess about the canonical order.
type RecordSelection string

const (
	// SelectNewest picks the first record, the upstream's newest-first convention.
	SelectNewest RecordSelection = "newest"
	// SelectOldest picks the last record.
	SelectOldest RecordSelection = "oldest"
)

// Poller runs one poll-validate-notify cycle. Implemented by PollService;
// the scheduler depends on this interface.
type Poller interface {
	RunCycle(ctx context.Context)
}

// PollService drives a single cycle: fetch from the status API, validate the
// response shape, map the selected record to a message, deliver it through
// the dedup notifier and advance the checkpoint. Failures are classified and
// never terminate the process.
type PollService struct {
	client      homework.Client
	notifier    Notifier
	store       *checkpoint.Store
	checkpoints checkpoint.Repository // nil when persistence is disabled
	selection   RecordSelection
	logger      *logrus.Entry
}

func NewPollService(
	client homework.Client,
	notifier Notifier,
	store *checkpoint.Store,
	checkpoints checkpoint.Repository,
	selection RecordSelection,
	logger *logrus.Entry,
) *PollService {
	return &PollService{
		client:      client,
		notifier:    notifier,
		store:       store,
		checkpoints: checkpoints,
		selection:   selection,
		logger:      logger,
	}
}

// RunCycle executes one cycle and routes any failure through the classifier.
func (s *PollService) RunCycle(ctx context.Context) {
	if err := s.runCycle(ctx); err != nil {
		s.handleCycleError(err)
	}
}

func (s *PollService) runCycle(ctx context.Context) error {
	fromTimestamp := s.store.Current()
	s.logger.Debugf("Endpoint request from timestamp %d", fromTimestamp)

	raw, err := s.client.FetchStatuses(ctx, fromTimestamp)
	if err != nil {
		return err
	}

	feed, err := homework.ValidateResponse(raw)
	if err != nil {
		return err
	}

	if len(feed.Homeworks) == 0 {
		// Expected, benign outcome: nothing new since the checkpoint.
		s.logger.Debug("API response does not contain new information about homeworks")
		return nil
	}

	message, err := homework.ParseStatus(s.selectRecord(feed.Homeworks))
	if err != nil {
		return err
	}
	s.logger.Info(message)

	delivered, err := s.notifier.Notify(message)
	if err != nil {
		return err
	}
	if delivered {
		s.advanceCheckpoint(ctx, feed.CurrentDate)
	}
	return nil
}

func (s *PollService) selectRecord(records []homework.Record) homework.Record {
	if s.selection == SelectOldest {
		return records[len(records)-1]
	}
	return records[0]
}

func (s *PollService) advanceCheckpoint(ctx context.Context, candidate int64) {
	if !s.store.Advance(candidate) {
		s.logger.Warnf("Checkpoint candidate %d is behind current %d, keeping current", candidate, s.store.Current())
		return
	}
	s.logger.Debugf("Checkpoint advanced to %d", s.store.Current())

	if s.checkpoints == nil {
		return
	}
	if err := s.checkpoints.Save(ctx, s.store.Current()); err != nil {
		// The in-memory value stays authoritative for this process lifetime.
		s.logger.WithError(err).Error("Failed to persist checkpoint")
	}
}

func (s *PollService) handleCycleError(err error) {
	switch Classify(err) {
	case DispositionLocalOnly:
		s.logger.WithError(err).Error("Program crash: notification delivery failed")
	case DispositionReport:
		message := fmt.Sprintf("Program crash: %v", err)
		s.logger.Error(message)
		if _, notifyErr := s.notifier.Notify(message); notifyErr != nil {
			s.logger.WithError(notifyErr).Error("Failed to report cycle failure to the chat")
		}
	}
}
