package model

// PendingTransactionParams are the params to init a new PendingTransaction
type PendingTransactionParams struct {
	Comment   string
	TxnID     string
	TxnHash   string
	PubID     string
	ProfileID string
	CreatedTs int64
}

// NewPendingTransaction is a convenience function to init a PendingTransaction
func NewPendingTransaction(params *PendingTransactionParams) *PendingTransaction {
	return &PendingTransaction{
		comment:   params.Comment,
		txnID:     params.TxnID,
		txnHash:   params.TxnHash,
		pubID:     params.PubID,
		profileID: params.ProfileID,
		createdTs: params.CreatedTs,
	}
}

// PendingTransaction is an optimistically queued comment waiting to be
// indexed. It is not a source of truth.
type PendingTransaction struct {
	comment string

	// relayer transaction id
	txnID string

	txnHash string

	// the publication commented on
	pubID string

	// the commenting channel
	profileID string

	createdTs int64
}

// Comment returns the comment text
func (p *PendingTransaction) Comment() string {
	return p.comment
}

// TxnID returns the relayer transaction id
func (p *PendingTransaction) TxnID() string {
	return p.txnID
}

// TxnHash returns the transaction hash, may be empty
func (p *PendingTransaction) TxnHash() string {
	return p.txnHash
}

// PubID returns the id of the publication commented on
func (p *PendingTransaction) PubID() string {
	return p.pubID
}

// ProfileID returns the id of the commenting channel
func (p *PendingTransaction) ProfileID() string {
	return p.profileID
}

// CreatedTs returns the epoch secs the transaction was queued at
func (p *PendingTransaction) CreatedTs() int64 {
	return p.createdTs
}
