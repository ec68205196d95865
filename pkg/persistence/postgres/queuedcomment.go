package postgres

import (
	"fmt"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

const (
	// QueuedCommentTableName is the name of the queued comment table
	QueuedCommentTableName = "queued_comment"
)

// CreateQueuedCommentTableQuery returns the query to create the queued comment table
func CreateQueuedCommentTableQuery() string {
	return CreateQueuedCommentTableQueryString(QueuedCommentTableName)
}

// CreateQueuedCommentTableQueryString returns the query to create this table.
// The serial id orders the queue, the highest id is the most recent.
func CreateQueuedCommentTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            id BIGSERIAL PRIMARY KEY,
            comment TEXT,
            txn_id TEXT NOT NULL,
            txn_hash TEXT,
            pub_id TEXT,
            profile_id TEXT,
            created_timestamp BIGINT
        );
        CREATE INDEX IF NOT EXISTS %s ON %s(txn_id);
    `, tableName, tableName+"_txn_id_idx", tableName)
	return queryString
}

// QueuedComment is the model definition for the queued comment table
type QueuedComment struct {
	ID int64 `db:"id"`

	Comment string `db:"comment"`

	TxnID string `db:"txn_id"`

	TxnHash string `db:"txn_hash"`

	PubID string `db:"pub_id"`

	ProfileID string `db:"profile_id"`

	CreatedTs int64 `db:"created_timestamp"`
}

// NewQueuedComment creates a QueuedComment row from a PendingTransaction
func NewQueuedComment(pending *model.PendingTransaction) *QueuedComment {
	return &QueuedComment{
		Comment:   pending.Comment(),
		TxnID:     pending.TxnID(),
		TxnHash:   pending.TxnHash(),
		PubID:     pending.PubID(),
		ProfileID: pending.ProfileID(),
		CreatedTs: pending.CreatedTs(),
	}
}

// DbToPendingTransaction creates a PendingTransaction from the row
func (q *QueuedComment) DbToPendingTransaction() *model.PendingTransaction {
	return model.NewPendingTransaction(&model.PendingTransactionParams{
		Comment:   q.Comment,
		TxnID:     q.TxnID,
		TxnHash:   q.TxnHash,
		PubID:     q.PubID,
		ProfileID: q.ProfileID,
		CreatedTs: q.CreatedTs,
	})
}
