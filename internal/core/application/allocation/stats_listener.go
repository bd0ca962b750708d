package allocation

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/protocol"
	"dispatch/internal/core/ports"
)

// ConfirmedCourseRecorder persists the reporting side of a confirmed course.
type ConfirmedCourseRecorder interface {
	Handle(ctx context.Context, command commands.RecordConfirmedCourseCommand) error
}

// StatsListener turns confirmed outcomes into earnings. It watches both
// protocol channels: announcements give it the course details (pickup,
// dropoff, announce time) that outcome frames do not carry, and confirmed
// outcomes trigger the recording command.
type StatsListener struct {
	broker   ports.Broker
	recorder ConfirmedCourseRecorder
	logger   *slog.Logger

	announced map[string]protocol.Announcement
}

// NewStatsListener creates a listener wired to the broker and recorder.
func NewStatsListener(broker ports.Broker, recorder ConfirmedCourseRecorder, logger *slog.Logger) *StatsListener {
	return &StatsListener{
		broker:    broker,
		recorder:  recorder,
		logger:    logger.With("component", "stats_listener"),
		announced: make(map[string]protocol.Announcement),
	}
}

// Run consumes announcements and outcomes until the context is cancelled.
// A failure to record one course is logged and does not stop the loop.
func (l *StatsListener) Run(ctx context.Context) error {
	announcements, cancelAnnouncements, err := l.broker.SubscribeAnnouncements(ctx)
	if err != nil {
		return err
	}
	defer cancelAnnouncements()

	outcomes, cancelOutcomes, err := l.broker.SubscribeOutcomes(ctx)
	if err != nil {
		return err
	}
	defer cancelOutcomes()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case frame, ok := <-announcements:
			if !ok {
				return nil
			}
			l.handleAnnouncement(frame)

		case frame, ok := <-outcomes:
			if !ok {
				return nil
			}
			l.handleOutcome(ctx, frame)
		}
	}
}

func (l *StatsListener) handleAnnouncement(frame []byte) {
	announcement, err := protocol.DecodeAnnouncement(frame)
	if err != nil {
		l.logger.Warn("dropping malformed announcement", "error", err)
		return
	}
	l.announced[announcement.CourseID] = announcement
}

func (l *StatsListener) handleOutcome(ctx context.Context, frame []byte) {
	outcome, err := protocol.DecodeOutcome(frame)
	if err != nil {
		l.logger.Warn("dropping malformed outcome", "error", err)
		return
	}

	// Selection is not terminal; keep the announcement until the course
	// confirms or expires.
	if outcome.Type == protocol.TypeSelected {
		return
	}
	defer delete(l.announced, outcome.CourseID)

	if outcome.Type != protocol.TypeConfirmed {
		return
	}

	announcement, ok := l.announced[outcome.CourseID]
	if !ok {
		l.logger.Warn("confirmed outcome without a matching announcement",
			"course_id", outcome.CourseID)
		return
	}

	command, err := l.buildCommand(announcement, outcome)
	if err != nil {
		l.logger.Warn("building record command failed",
			"course_id", outcome.CourseID, "error", err)
		return
	}

	if err = l.recorder.Handle(ctx, command); err != nil {
		l.logger.Error("recording confirmed course failed",
			"course_id", outcome.CourseID, "error", err)
		return
	}
	l.logger.Info("earnings recorded",
		"course_id", outcome.CourseID,
		"courier_id", outcome.CourierID,
		"reward", outcome.Reward)
}

func (l *StatsListener) buildCommand(
	announcement protocol.Announcement,
	outcome protocol.Outcome,
) (commands.RecordConfirmedCourseCommand, error) {
	courseID, err := kernel.UUIDFromString(outcome.CourseID)
	if err != nil {
		return commands.RecordConfirmedCourseCommand{}, err
	}
	courierID, err := kernel.UUIDFromString(outcome.CourierID)
	if err != nil {
		return commands.RecordConfirmedCourseCommand{}, err
	}
	reward, err := outcome.RewardMoney()
	if err != nil {
		return commands.RecordConfirmedCourseCommand{}, err
	}

	decidedAt := outcome.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now()
	}

	return commands.NewRecordConfirmedCourseCommand(
		courseID,
		announcement.Pickup,
		announcement.Dropoff,
		reward,
		announcement.AnnouncedAt,
		courierID,
		decidedAt,
	)
}
