// Package persistence contains components to interact with the DB
package persistence // import "github.com/tapexyz/tape-publisher/pkg/persistence"

import (
	"database/sql"
	"fmt"

	log "github.com/golang/glog"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/persistence/postgres"

	// driver for postgresql
	_ "github.com/lib/pq"
)

// NewPostgresPersister creates a new postgres persister
func NewPostgresPersister(host string, port int, user string, password string,
	dbname string) (*PostgresPersister, error) {
	pgPersister := &PostgresPersister{}
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	db, err := sqlx.Connect("postgres", psqlInfo)
	if err != nil {
		return pgPersister, errors.Wrap(err, "error connecting to sqlx")
	}
	pgPersister.db = db
	pgPersister.queuedCommentTableName = postgres.QueuedCommentTableName
	pgPersister.sigNonceTableName = postgres.SigNonceTableName
	pgPersister.cronTableName = postgres.CronTableName
	return pgPersister, nil
}

// PostgresPersister holds the DB connection and persistence
type PostgresPersister struct {
	db                     *sqlx.DB
	queuedCommentTableName string
	sigNonceTableName      string
	cronTableName          string
}

// CreateTables creates the tables for the publisher if they don't exist
func (p *PostgresPersister) CreateTables() error {
	queuedCommentSchema := postgres.CreateQueuedCommentTableQueryString(p.queuedCommentTableName)
	sigNonceSchema := postgres.CreateSigNonceTableQueryString(p.sigNonceTableName)
	cronSchema := postgres.CreateCronTableQueryString(p.cronTableName)

	_, err := p.db.Exec(queuedCommentSchema)
	if err != nil {
		return errors.Wrap(err, "error creating queued_comment table in postgres")
	}
	_, err = p.db.Exec(sigNonceSchema)
	if err != nil {
		return errors.Wrap(err, "error creating sig_nonce table in postgres")
	}
	_, err = p.db.Exec(cronSchema)
	if err != nil {
		return errors.Wrap(err, "error creating cron table in postgres")
	}
	return nil
}

// Close closes the DB connection
func (p *PostgresPersister) Close() error {
	return p.db.Close()
}

// QueuedComments returns all queued comments, most recent first
func (p *PostgresPersister) QueuedComments() ([]*model.PendingTransaction, error) {
	queryString := fmt.Sprintf(`SELECT id, comment, txn_id, txn_hash, pub_id, profile_id,
        created_timestamp FROM %s ORDER BY id DESC;`, p.queuedCommentTableName) // nolint: gosec
	dbComments := []*postgres.QueuedComment{}
	err := p.db.Select(&dbComments, queryString)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving queued comments")
	}
	pending := make([]*model.PendingTransaction, len(dbComments))
	for i, dbComment := range dbComments {
		pending[i] = dbComment.DbToPendingTransaction()
	}
	return pending, nil
}

// PrependQueuedComment adds a comment to the front of the queue
func (p *PostgresPersister) PrependQueuedComment(pending *model.PendingTransaction) error {
	queryString := fmt.Sprintf(`INSERT INTO %s (comment, txn_id, txn_hash, pub_id, profile_id,
        created_timestamp) VALUES (:comment, :txn_id, :txn_hash, :pub_id, :profile_id,
        :created_timestamp);`, p.queuedCommentTableName) // nolint: gosec
	_, err := p.db.NamedExec(queryString, postgres.NewQueuedComment(pending))
	if err != nil {
		return errors.Wrap(err, "error saving queued comment to table")
	}
	return nil
}

// RemoveQueuedComment removes queued comments with the given relayer tx id
func (p *PostgresPersister) RemoveQueuedComment(txnID string) error {
	queryString := fmt.Sprintf(`DELETE FROM %s WHERE txn_id=$1;`, p.queuedCommentTableName) // nolint: gosec
	_, err := p.db.Exec(queryString, txnID)
	if err != nil {
		return errors.Wrapf(err, "error removing queued comment %v", txnID)
	}
	return nil
}

// SigNonce returns the next signature nonce to use for a profile
func (p *PostgresPersister) SigNonce(profileID string) (int64, error) {
	queryString := fmt.Sprintf(`SELECT profile_id, nonce FROM %s WHERE profile_id=$1;`,
		p.sigNonceTableName) // nolint: gosec
	dbNonce := postgres.SigNonce{}
	err := p.db.Get(&dbNonce, queryString, profileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, model.ErrNoPersisterResults
		}
		return 0, errors.Wrapf(err, "error retrieving sig nonce for %v", profileID)
	}
	return dbNonce.Nonce, nil
}

// SetSigNonce stores the profile nonce
func (p *PostgresPersister) SetSigNonce(profileID string, nonce int64) error {
	queryString := fmt.Sprintf(`INSERT INTO %s (profile_id, nonce) VALUES ($1, $2)
        ON CONFLICT (profile_id) DO UPDATE SET nonce = $2;`, p.sigNonceTableName) // nolint: gosec
	_, err := p.db.Exec(queryString, profileID, nonce)
	if err != nil {
		return errors.Wrapf(err, "error setting sig nonce for %v", profileID)
	}
	return nil
}

// IncrementSigNonce increments the profile nonce by exactly 1 and returns the
// new value
func (p *PostgresPersister) IncrementSigNonce(profileID string) (int64, error) {
	queryString := fmt.Sprintf(`INSERT INTO %s (profile_id, nonce) VALUES ($1, 1)
        ON CONFLICT (profile_id) DO UPDATE SET nonce = %s.nonce + 1 RETURNING nonce;`,
		p.sigNonceTableName, p.sigNonceTableName) // nolint: gosec
	var nonce int64
	err := p.db.Get(&nonce, queryString, profileID)
	if err != nil {
		return 0, errors.Wrapf(err, "error incrementing sig nonce for %v", profileID)
	}
	log.V(2).Infof("Incremented sig nonce for %v to %v", profileID, nonce)
	return nonce, nil
}

// TimestampOfLastReconcileForCron returns the last reconcile timestamp, 0 if
// the cron never ran
func (p *PostgresPersister) TimestampOfLastReconcileForCron() (int64, error) {
	queryString := fmt.Sprintf(`SELECT timestamp FROM %s;`, p.cronTableName) // nolint: gosec
	dbCron := postgres.CronData{}
	err := p.db.Get(&dbCron, queryString)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, errors.Wrap(err, "error retrieving cron timestamp")
	}
	return dbCron.Timestamp, nil
}

// UpdateTimestampForCron updates the last reconcile timestamp
func (p *PostgresPersister) UpdateTimestampForCron(timestamp int64) error {
	var count int
	err := p.db.Get(&count, postgres.CheckTableCount(p.cronTableName))
	if err != nil {
		return errors.Wrap(err, "error checking cron table count")
	}
	cronData := postgres.NewCron(timestamp)
	var queryString string
	if count == 0 {
		queryString = fmt.Sprintf(`INSERT INTO %s (timestamp) VALUES (:timestamp);`,
			p.cronTableName) // nolint: gosec
	} else {
		queryString = fmt.Sprintf(`UPDATE %s SET timestamp=:timestamp;`, p.cronTableName) // nolint: gosec
	}
	_, err = p.db.NamedExec(queryString, cronData)
	if err != nil {
		return errors.Wrap(err, "error saving cron timestamp")
	}
	return nil
}
