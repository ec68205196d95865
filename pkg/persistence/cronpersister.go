package persistence

import (
	"sync"
)

// CronPersister stores the last reconcile timestamp in memory
type CronPersister struct {
	mutex         sync.Mutex
	lastTimestamp int64
}

// NewCronPersister creates a cron persister
func NewCronPersister() *CronPersister {
	return &CronPersister{}
}

// TimestampOfLastReconcileForCron returns the last reconcile timestamp
func (cp *CronPersister) TimestampOfLastReconcileForCron() (int64, error) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()
	return cp.lastTimestamp, nil
}

// UpdateTimestampForCron saves the timestamp to cron persistence
func (cp *CronPersister) UpdateTimestampForCron(timestamp int64) error {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()
	cp.lastTimestamp = timestamp
	return nil
}
