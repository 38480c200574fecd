package rate

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RunRefreshJob is the body of the daily job. A failed fetch keeps the stored rate and is not retried until the next run.
func RunRefreshJob(ctx context.Context, execID string, refresher Refresher) {
	log := logrus.WithField("exec_id", execID)
	log.Info("Rate refresh started")

	updated, err := refresher.Refresh(ctx)
	switch {
	case err != nil:
		log.WithError(err).Error("Rate refresh failed")
	case !updated:
		log.Warn("NBU rate unavailable, previous rate kept")
	default:
		log.Info("Rate refresh finished")
	}
}
