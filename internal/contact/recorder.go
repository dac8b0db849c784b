package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder receives submissions that passed validation.
type Recorder interface {
	Record(ctx context.Context, s Submission) (id string, err error)
}

// LogRecorder writes submissions to the process log and nowhere else.
type LogRecorder struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger, now: time.Now}
}

func (r *LogRecorder) Record(_ context.Context, s Submission) (string, error) {
	id := uuid.NewString()
	r.logger.Info("contact form submission",
		zap.String("id", id),
		zap.String("name", s.Name),
		zap.String("email", s.Email),
		zap.String("company", s.Company),
		zap.String("subject", s.Subject),
		zap.Int("message_length", len(s.Message)),
		zap.Time("received_at", r.now()),
	)
	return id, nil
}
