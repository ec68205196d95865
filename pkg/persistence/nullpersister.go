package persistence

import (
	"github.com/tapexyz/tape-publisher/pkg/model"
)

// NullPersister is a persister that does nothing
type NullPersister struct{}

// QueuedComments returns no comments
func (n *NullPersister) QueuedComments() ([]*model.PendingTransaction, error) {
	return []*model.PendingTransaction{}, nil
}

// PrependQueuedComment does nothing
func (n *NullPersister) PrependQueuedComment(pending *model.PendingTransaction) error {
	return nil
}

// RemoveQueuedComment does nothing
func (n *NullPersister) RemoveQueuedComment(txnID string) error {
	return nil
}

// SigNonce never has a stored nonce
func (n *NullPersister) SigNonce(profileID string) (int64, error) {
	return 0, model.ErrNoPersisterResults
}

// SetSigNonce does nothing
func (n *NullPersister) SetSigNonce(profileID string, nonce int64) error {
	return nil
}

// IncrementSigNonce does nothing
func (n *NullPersister) IncrementSigNonce(profileID string) (int64, error) {
	return 0, nil
}

// TimestampOfLastReconcileForCron returns 0
func (n *NullPersister) TimestampOfLastReconcileForCron() (int64, error) {
	return 0, nil
}

// UpdateTimestampForCron does nothing
func (n *NullPersister) UpdateTimestampForCron(timestamp int64) error {
	return nil
}
