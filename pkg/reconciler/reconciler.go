// Package reconciler prunes the pending comment queue once the relayer
// transactions are indexed by Lens
package reconciler // import "github.com/tapexyz/tape-publisher/pkg/reconciler"

import (
	"context"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/submission"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

// TxIndexChecker returns the indexing status of a relayer transaction
type TxIndexChecker interface {
	HasTxHashBeenIndexed(ctx context.Context, txID string) (*lens.TxIndexedResult, error)
}

// NewReconcilerParams are the params to init a new Reconciler. Cache is
// optional.
type NewReconcilerParams struct {
	Checker TxIndexChecker
	Queue   model.PendingTxPersister
	Cron    model.CronPersister
	Cache   submission.CommentCache
}

// NewReconciler returns a new Reconciler
func NewReconciler(params *NewReconcilerParams) *Reconciler {
	return &Reconciler{
		checker: params.Checker,
		queue:   params.Queue,
		cron:    params.Cron,
		cache:   params.Cache,
	}
}

// Reconciler removes queued comments that were indexed or failed
type Reconciler struct {
	checker TxIndexChecker
	queue   model.PendingTxPersister
	cron    model.CronPersister
	cache   submission.CommentCache
}

// Stats are the counts of a single reconcile run
type Stats struct {
	Checked int
	Indexed int
	Failed  int
	Pending int
}

// Reconcile checks every queued comment once. Indexed comments are removed and
// the publication they comment on is refreshed in the cache. Comments whose
// transaction failed are removed. Everything else stays queued.
func (r *Reconciler) Reconcile(ctx context.Context) (*Stats, error) {
	lastTs, err := r.cron.TimestampOfLastReconcileForCron()
	if err != nil {
		return nil, errors.Wrap(err, "error getting last reconcile timestamp")
	}
	log.V(2).Infof("Last reconcile at %v", lastTs)

	queued, err := r.queue.QueuedComments()
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving queued comments")
	}

	stats := &Stats{}
	for _, pending := range queued {
		stats.Checked++
		result, err := r.checker.HasTxHashBeenIndexed(ctx, pending.TxnID())
		if err != nil {
			log.Errorf("Error checking tx %v: err: %v", pending.TxnID(), err)
			stats.Pending++
			continue
		}

		switch {
		case result.Typename == lens.TypenameTransactionError:
			log.Infof("Queued comment %v failed: %v", pending.TxnID(), result.Reason)
			stats.Failed++

		case result.Indexed:
			log.Infof("Queued comment %v indexed in %v", pending.TxnID(), result.TxHash)
			stats.Indexed++
			r.refresh(ctx, pending.PubID())

		default:
			stats.Pending++
			continue
		}

		err = r.queue.RemoveQueuedComment(pending.TxnID())
		if err != nil {
			return stats, errors.Wrapf(err, "error removing queued comment %v", pending.TxnID())
		}
	}

	err = r.cron.UpdateTimestampForCron(utils.CurrentEpochSecsInInt64())
	if err != nil {
		return stats, errors.Wrap(err, "error updating reconcile timestamp")
	}
	return stats, nil
}

func (r *Reconciler) refresh(ctx context.Context, publicationID string) {
	if r.cache == nil || publicationID == "" {
		return
	}
	err := r.cache.FetchAndCache(ctx, publicationID)
	if err != nil {
		log.Errorf("Error refreshing publication %v: err: %v", publicationID, err)
	}
}
