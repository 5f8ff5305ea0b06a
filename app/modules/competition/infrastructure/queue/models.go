package competitionqueue

import (
	"time"

	"github.com/riverqueue/river"
)

// SyncQueue is the River queue sync jobs run on.
const SyncQueue = "sync"

// SyncSnapshotJob refreshes the competition snapshot from the backend.
type SyncSnapshotJob struct {
	Reason string `json:"reason,omitempty"`
}

// Kind returns the job type identifier for River
func (SyncSnapshotJob) Kind() string { return "sync_snapshot" }

// InsertOpts keeps at most one pending sync per minute.
func (SyncSnapshotJob) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       SyncQueue,
		MaxAttempts: 3,
		UniqueOpts: river.UniqueOpts{
			ByPeriod: time.Minute,
		},
	}
}
