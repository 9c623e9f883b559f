// Package job holds the cron jobs run by the web server.
package job

import (
	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/util/common"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file.
type CheckpointJob struct {
	checkpoint func() error
}

func NewCheckpointJob() *CheckpointJob {
	return &CheckpointJob{checkpoint: database.Checkpoint}
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := j.checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
