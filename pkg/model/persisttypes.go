package model

// PendingTxPersister is the interface to store the queue of optimistically
// submitted comments. The queue is most-recent-first.
type PendingTxPersister interface {
	// QueuedComments returns all queued comments, most recent first
	QueuedComments() ([]*PendingTransaction, error)
	// PrependQueuedComment adds a comment to the front of the queue
	PrependQueuedComment(pending *PendingTransaction) error
	// RemoveQueuedComment removes queued comments with the given relayer tx id
	RemoveQueuedComment(txnID string) error
}

// SigNoncePersister is the interface to store the typed data signature nonce
// of each channel
type SigNoncePersister interface {
	// SigNonce returns the next signature nonce to use for a profile.
	// Returns ErrNoPersisterResults if the profile nonce was never stored.
	SigNonce(profileID string) (int64, error)
	// SetSigNonce stores the profile nonce, used to seed it from Lens
	SetSigNonce(profileID string, nonce int64) error
	// IncrementSigNonce increments the profile nonce by exactly 1 and returns
	// the new value
	IncrementSigNonce(profileID string) (int64, error)
}

// CronPersister persists information needed for the queue reconciliation cron
type CronPersister interface {
	// TimestampOfLastReconcileForCron returns the last reconcile timestamp
	TimestampOfLastReconcileForCron() (int64, error)
	// UpdateTimestampForCron updates the last reconcile timestamp
	UpdateTimestampForCron(timestamp int64) error
}
