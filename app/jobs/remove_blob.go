// Package jobs defines the background jobs dispatched through pkg/queue.
package jobs

import (
	"github.com/treasuryofflair/flairmarket/pkg/logger"
	"github.com/treasuryofflair/flairmarket/pkg/queue"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
)

// RemoveBlobJob deletes an orphaned image blob after its listing row was
// deleted or its image replaced.
type RemoveBlobJob struct {
	Path string `json:"path"`
}

// Handle removes the blob. Cleanup is strictly best-effort: a failure is
// logged and swallowed so the queue never retries it, leaving at worst an
// orphaned file.
func (j *RemoveBlobJob) Handle() error {
	if j.Path == "" {
		return nil
	}
	if err := storage.Delete(j.Path); err != nil {
		logger.Warn("blob cleanup failed", "path", j.Path, "error", err)
	}
	return nil
}

// Register makes all job types known to the queue. Call once at boot.
func Register() {
	queue.Register("*jobs.RemoveBlobJob", func() queue.Job { return &RemoveBlobJob{} })
}

// CleanupBlob queues removal of a stored blob. Dispatch failures are
// logged and dropped; the caller has already responded.
func CleanupBlob(path string) {
	if err := queue.Dispatch(&RemoveBlobJob{Path: path}); err != nil {
		logger.Warn("blob cleanup dispatch failed", "path", path, "error", err)
	}
}
