package submitmain_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tapexyz/tape-publisher/pkg/events"
	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/metadata"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/persistence"
	"github.com/tapexyz/tape-publisher/pkg/reconciler"
	"github.com/tapexyz/tape-publisher/pkg/submission"
	"github.com/tapexyz/tape-publisher/pkg/submitmain"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

func TestInitPersisters(t *testing.T) {
	persisters, err := submitmain.InitPersisters(&utils.PublisherConfig{
		PersisterType: utils.PersisterTypeMemory,
	})
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	err = persisters.Queue.PrependQueuedComment(model.NewPendingTransaction(
		&model.PendingTransactionParams{TxnID: "txid-1"}))
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	// The same persister backs the queue and the cron
	if _, ok := persisters.Cron.(*persistence.MemoryPersister); !ok {
		t.Errorf("Should have been a memory persister")
	}
	persisters.Close()
}

func TestInitServices(t *testing.T) {
	services, err := submitmain.InitServices(context.Background(), &utils.PublisherConfig{
		LensAPIURL: "http://localhost:3000",
		CacheSize:  10,
	})
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if services.Lens == nil || services.Cache == nil {
		t.Errorf("Should have initialized the services")
	}
	if _, ok := services.Events.(*events.NullPublisher); !ok {
		t.Errorf("Should have disabled events without a project")
	}
	services.Close()
}

type testLens struct {
	channel *model.Channel
	pub     *model.Publication
	typed   int
	fetches int
}

func (l *testLens) Profile(ctx context.Context, profileID string) (*model.Channel, error) {
	return l.channel, nil
}

func (l *testLens) Publication(ctx context.Context, publicationID string) (*model.Publication, error) {
	l.fetches++
	if publicationID != l.pub.ID() {
		return model.NewPublication(&model.PublicationParams{ID: publicationID, ProfileHandle: "commenter.lens"}), nil
	}
	return l.pub, nil
}

func (l *testLens) CreateCommentViaDispatcher(ctx context.Context,
	req *model.OnChainCommentRequest) (*lens.RelayResult, error) {
	return &lens.RelayResult{Typename: lens.TypenameRelayerResult, TxID: "txid-1"}, nil
}

func (l *testLens) CreateCommentTypedData(ctx context.Context, req *model.OnChainCommentRequest,
	nonce int64) (*lens.TypedDataResult, error) {
	l.typed++
	return nil, nil
}

func (l *testLens) Broadcast(ctx context.Context, id string, signature string) (*lens.RelayResult, error) {
	return nil, nil
}

func (l *testLens) CreateDataAvailabilityCommentViaDispatcher(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) (*lens.DataAvailabilityResult, error) {
	return nil, nil
}

func (l *testLens) CreateDataAvailabilityCommentTypedData(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) (*lens.TypedDataResult, error) {
	return nil, nil
}

func (l *testLens) BroadcastDataAvailability(ctx context.Context, id string,
	signature string) (*lens.DataAvailabilityResult, error) {
	return nil, nil
}

func (l *testLens) HasTxHashBeenIndexed(ctx context.Context, txID string) (*lens.TxIndexedResult, error) {
	return &lens.TxIndexedResult{Typename: lens.TypenameTxIndexedResult, Indexed: true}, nil
}

type testPublisher struct{}

func (p *testPublisher) Publish(ctx context.Context, meta *model.PublicationMetadata,
	contentID string) (string, error) {
	return "ar://metadata", nil
}

func TestRunSubmitAndReconcile(t *testing.T) {
	testClient := &testLens{
		channel: model.NewChannel(&model.ChannelParams{
			ID:     "0x01",
			Handle: "commenter.lens",
			Dispatcher: &model.Dispatcher{
				Address:     common.HexToAddress(model.OldLensRelayerAddress),
				CanUseRelay: true,
			},
		}),
		pub: model.NewPublication(&model.PublicationParams{ID: "0x02-0x0a", MetadataName: "video"}),
	}
	persister := persistence.NewMemoryPersister()
	submitter := submission.NewSubmitter(&submission.NewSubmitterParams{
		Builder:   metadata.NewBuilder(&metadata.BuilderConfig{AppID: "Live", WebsiteURL: "https://tape.xyz"}),
		Publisher: &testPublisher{},
		Relay:     testClient,
		Queue:     persister,
		Nonces:    persister,
	})

	cache, err := submission.NewPublicationCache(testClient, 10)
	if err != nil {
		t.Fatalf("Should not have failed to create cache: err: %v", err)
	}

	for i := 0; i < 2; i++ {
		res, err := submitmain.RunSubmit(context.Background(), testClient, cache, submitter,
			&submitmain.SubmitParams{ProfileID: "0x01", PublicationID: "0x02-0x0a", Text: "nice"})
		if err != nil {
			t.Fatalf("Should not have failed: err: %v", err)
		}
		if res.TxnID != "txid-1" || testClient.typed != 0 {
			t.Errorf("Should have submitted through the dispatcher")
		}
		if res.ContentID == "" {
			t.Errorf("Should have recorded the content id")
		}
		if _, ok := submitmain.CachedComment(cache, res); ok {
			t.Errorf("On-chain comments are not cached")
		}
	}
	if testClient.fetches != 1 {
		t.Errorf("Should have read the publication from the cache, fetched %v times", testClient.fetches)
	}

	rec := reconciler.NewReconciler(&reconciler.NewReconcilerParams{
		Checker: testClient,
		Queue:   persister,
		Cron:    persister,
	})
	submitmain.RunReconcile(context.Background(), rec)
	queued, _ := persister.QueuedComments()
	if len(queued) != 0 {
		t.Errorf("Should have pruned the indexed comment, got %v", len(queued))
	}
}

func TestCachedComment(t *testing.T) {
	testClient := &testLens{pub: model.NewPublication(&model.PublicationParams{ID: "0x02-0x0a"})}
	cache, err := submission.NewPublicationCache(testClient, 10)
	if err != nil {
		t.Fatalf("Should not have failed to create cache: err: %v", err)
	}
	res := &submission.Result{PublicationID: "0x01-DA-abc"}
	if _, ok := submitmain.CachedComment(cache, res); ok {
		t.Errorf("Should not have found an uncached comment")
	}
	err = cache.FetchAndCache(context.Background(), "0x01-DA-abc")
	if err != nil {
		t.Fatalf("Should not have failed to cache: err: %v", err)
	}
	comment, ok := submitmain.CachedComment(cache, res)
	if !ok || comment.ProfileHandle() != "commenter.lens" {
		t.Errorf("Should have returned the cached comment")
	}
}
