// Package notify abstracts proactive alert delivery behind a capability
// interface. Whether a real channel (push, on-device shortcut) exists is
// decided once at startup; callers always get a Notifier and never probe.
package notify

import (
	"context"

	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/models"
)

// Notifier delivers proactive alerts to a user. Implementations must be
// safe for concurrent use.
type Notifier interface {
	// CrisisAdvisory surfaces a detector classification. Advisory only.
	CrisisAdvisory(ctx context.Context, userID string, alert models.CrisisAlert) error

	// UpcomingTriggerDate warns about a declared date 1-2 days ahead.
	UpcomingTriggerDate(ctx context.Context, userID string, alert models.UpcomingAlert) error
}

// NewFromKind selects an implementation by config value. Unknown kinds fall
// back to the no-op.
func NewFromKind(kind string) Notifier {
	switch kind {
	case "log":
		return &logNotifier{}
	default:
		return Noop{}
	}
}

// Noop is the fallback when no delivery channel is available.
type Noop struct{}

func (Noop) CrisisAdvisory(context.Context, string, models.CrisisAlert) error { return nil }

func (Noop) UpcomingTriggerDate(context.Context, string, models.UpcomingAlert) error { return nil }

// logNotifier writes alerts to the structured log; useful in development
// and as an audit trail until a push channel is wired.
type logNotifier struct{}

func (n *logNotifier) CrisisAdvisory(ctx context.Context, userID string, alert models.CrisisAlert) error {
	logger.Ctx(ctx).Info("crisis advisory",
		logger.String("user_id", userID),
		logger.String("severity", string(alert.Severity)),
		logger.Any("reasons", alert.Reasons),
	)
	return nil
}

func (n *logNotifier) UpcomingTriggerDate(ctx context.Context, userID string, alert models.UpcomingAlert) error {
	logger.Ctx(ctx).Info("upcoming trigger date",
		logger.String("user_id", userID),
		logger.String("label", alert.Label),
		logger.String("date", alert.Date),
		logger.Int("days_away", alert.DaysAway),
	)
	return nil
}
