package reconciler_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/persistence"
	"github.com/tapexyz/tape-publisher/pkg/reconciler"
)

type testChecker struct {
	results map[string]*lens.TxIndexedResult
}

func (c *testChecker) HasTxHashBeenIndexed(ctx context.Context, txID string) (*lens.TxIndexedResult, error) {
	result, ok := c.results[txID]
	if !ok {
		return nil, errors.New("unknown tx")
	}
	return result, nil
}

type testCache struct {
	ids []string
}

func (c *testCache) FetchAndCache(ctx context.Context, publicationID string) error {
	c.ids = append(c.ids, publicationID)
	return nil
}

func queue(t *testing.T, p model.PendingTxPersister, txnID string, pubID string) {
	err := p.PrependQueuedComment(model.NewPendingTransaction(&model.PendingTransactionParams{
		Comment: "comment",
		TxnID:   txnID,
		PubID:   pubID,
	}))
	if err != nil {
		t.Fatalf("Should not have failed to queue: err: %v", err)
	}
}

func TestReconcile(t *testing.T) {
	persister := persistence.NewMemoryPersister()
	queue(t, persister, "indexed", "0x01-0x01")
	queue(t, persister, "pending", "0x01-0x02")
	queue(t, persister, "failed", "0x01-0x03")
	queue(t, persister, "unknown", "0x01-0x04")

	checker := &testChecker{results: map[string]*lens.TxIndexedResult{
		"indexed": {Typename: lens.TypenameTxIndexedResult, Indexed: true, TxHash: "0xhash"},
		"pending": {Typename: lens.TypenameTxIndexedResult, Indexed: false},
		"failed":  {Typename: lens.TypenameTransactionError, Reason: "REVERTED"},
	}}
	cache := &testCache{}
	rec := reconciler.NewReconciler(&reconciler.NewReconcilerParams{
		Checker: checker,
		Queue:   persister,
		Cron:    persister,
		Cache:   cache,
	})

	stats, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if stats.Checked != 4 || stats.Indexed != 1 || stats.Failed != 1 || stats.Pending != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	queued, _ := persister.QueuedComments()
	if len(queued) != 2 {
		t.Fatalf("Should have 2 queued comments left, got %v", len(queued))
	}
	if queued[0].TxnID() != "unknown" || queued[1].TxnID() != "pending" {
		t.Errorf("Should have kept the pending comments in order")
	}
	if len(cache.ids) != 1 || cache.ids[0] != "0x01-0x01" {
		t.Errorf("Should have refreshed the indexed publication, got %v", cache.ids)
	}
	ts, _ := persister.TimestampOfLastReconcileForCron()
	if ts == 0 {
		t.Errorf("Should have updated the reconcile timestamp")
	}
}

func TestReconcileEmptyQueue(t *testing.T) {
	persister := persistence.NewMemoryPersister()
	rec := reconciler.NewReconciler(&reconciler.NewReconcilerParams{
		Checker: &testChecker{},
		Queue:   persister,
		Cron:    persister,
	})
	stats, err := rec.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if stats.Checked != 0 {
		t.Errorf("Should not have checked anything")
	}
}
