package backend

import (
	"context"

	"github.com/yildizm/TweetSense/internal/logger"
)

// HealthChecker is the subset of Client used by Probe
type HealthChecker interface {
	Health(ctx context.Context) (*HealthStatus, error)
}

// Probe makes a single health request and never fails: any error is
// logged and reported as the offline sentinel.
func Probe(ctx context.Context, checker HealthChecker, log *logger.Logger) HealthStatus {
	if log == nil {
		log = logger.New("health", nil)
	}

	status, err := checker.Health(ctx)
	if err != nil {
		log.WarnWithFields("backend health probe failed", []logger.Field{logger.Error(err)})
		return Offline()
	}

	log.InfoWithFields("backend health probed", []logger.Field{
		logger.F("status", status.Status),
		logger.F("hybrid_ready", status.Ready()),
	})
	return *status
}
