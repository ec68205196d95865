package persistence

import (
	"sync"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{
		CronPersister: NewCronPersister(),
		nonces:        map[string]int64{},
	}
}

// MemoryPersister keeps the pending queue, sig nonces and cron timestamp in
// memory. Its state lives as long as the process, like a session.
type MemoryPersister struct {
	*CronPersister

	mutex  sync.Mutex
	queue  []*model.PendingTransaction
	nonces map[string]int64
}

// QueuedComments returns all queued comments, most recent first
func (m *MemoryPersister) QueuedComments() ([]*model.PendingTransaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	queue := make([]*model.PendingTransaction, len(m.queue))
	copy(queue, m.queue)
	return queue, nil
}

// PrependQueuedComment adds a comment to the front of the queue
func (m *MemoryPersister) PrependQueuedComment(pending *model.PendingTransaction) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.queue = append([]*model.PendingTransaction{pending}, m.queue...)
	return nil
}

// RemoveQueuedComment removes queued comments with the given relayer tx id
func (m *MemoryPersister) RemoveQueuedComment(txnID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	queue := m.queue[:0]
	for _, pending := range m.queue {
		if pending.TxnID() != txnID {
			queue = append(queue, pending)
		}
	}
	m.queue = queue
	return nil
}

// SigNonce returns the next signature nonce to use for a profile
func (m *MemoryPersister) SigNonce(profileID string) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	nonce, ok := m.nonces[profileID]
	if !ok {
		return 0, model.ErrNoPersisterResults
	}
	return nonce, nil
}

// SetSigNonce stores the profile nonce
func (m *MemoryPersister) SetSigNonce(profileID string, nonce int64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.nonces[profileID] = nonce
	return nil
}

// IncrementSigNonce increments the profile nonce by exactly 1
func (m *MemoryPersister) IncrementSigNonce(profileID string) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.nonces[profileID]++
	return m.nonces[profileID], nil
}
