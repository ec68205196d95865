// Package submitmain contains the wiring used by the publisher binaries
package submitmain

import (
	"context"
	"io"

	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/golang/glog"

	"github.com/tapexyz/tape-publisher/pkg/events"
	"github.com/tapexyz/tape-publisher/pkg/helpers"
	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/signer"
	"github.com/tapexyz/tape-publisher/pkg/submission"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

// InitializedPersisters contains initialized persisters needed to run the publisher
type InitializedPersisters struct {
	Queue model.PendingTxPersister
	Nonce model.SigNoncePersister
	Cron  model.CronPersister

	persister interface{}
}

// Close closes the underlying persister if it holds a connection
func (i *InitializedPersisters) Close() {
	closer, ok := i.persister.(io.Closer)
	if !ok {
		return
	}
	err := closer.Close()
	if err != nil {
		log.Errorf("Error closing persister: err: %v", err)
	}
}

// InitPersisters inits the persisters from the config
func InitPersisters(config *utils.PublisherConfig) (*InitializedPersisters, error) {
	persister, err := helpers.Persister(config)
	if err != nil {
		log.Errorf("Error getting the persister: %v", err)
		return nil, err
	}
	queuePersister, err := helpers.PendingTxPersister(persister)
	if err != nil {
		log.Errorf("Error w queuePersister: err: %v", err)
		return nil, err
	}
	noncePersister, err := helpers.SigNoncePersister(persister)
	if err != nil {
		log.Errorf("Error w noncePersister: err: %v", err)
		return nil, err
	}
	cronPersister, err := helpers.CronPersister(persister)
	if err != nil {
		log.Errorf("Error w cronPersister: err: %v", err)
		return nil, err
	}
	return &InitializedPersisters{
		Queue:     queuePersister,
		Nonce:     noncePersister,
		Cron:      cronPersister,
		persister: persister,
	}, nil
}

// Services are the clients shared by the submitter and the reconciler
type Services struct {
	Lens   *lens.Client
	Cache  *submission.PublicationCache
	Events events.Publisher

	eth *ethclient.Client
}

// Close closes the eth client and flushes the events publisher
func (s *Services) Close() {
	if s.eth != nil {
		s.eth.Close()
	}
	stopper, ok := s.Events.(*events.GooglePubSub)
	if !ok {
		return
	}
	err := stopper.Stop()
	if err != nil {
		log.Errorf("Error stopping events publisher: err: %v", err)
	}
}

// InitServices inits the Lens client, publication cache and events publisher
func InitServices(ctx context.Context, config *utils.PublisherConfig) (*Services, error) {
	lensClient := helpers.LensClient(config)
	cache, err := submission.NewPublicationCache(lensClient, config.CacheSize)
	if err != nil {
		return nil, err
	}
	eventsPublisher, err := helpers.EventsPublisher(ctx, config)
	if err != nil {
		log.Errorf("Error initializing events publisher: err: %v", err)
		return nil, err
	}
	return &Services{
		Lens:   lensClient,
		Cache:  cache,
		Events: eventsPublisher,
	}, nil
}

// InitSubmitter dials the eth API and builds a Submitter. If prompt is set
// every signature is confirmed on in/out first.
func InitSubmitter(config *utils.PublisherConfig, persisters *InitializedPersisters,
	services *Services, prompt bool, in io.Reader, out io.Writer) (*submission.Submitter, error) {
	keySigner, err := helpers.KeySigner(config)
	if err != nil {
		return nil, err
	}
	client, err := ethclient.Dial(config.EthAPIURL)
	if err != nil {
		log.Errorf("Error connecting to eth API: err: %v", err)
		return nil, err
	}
	services.eth = client

	writer, transferer, err := helpers.ChainWriters(config, client, keySigner)
	if err != nil {
		return nil, err
	}

	var typedDataSigner submission.Signer = keySigner
	if prompt {
		typedDataSigner = signer.NewPromptSigner(keySigner, in, out)
	}

	return submission.NewSubmitter(&submission.NewSubmitterParams{
		Builder:     helpers.MetadataBuilder(config),
		Publisher:   helpers.ContentPublisher(config),
		Relay:       services.Lens,
		Signer:      typedDataSigner,
		Writer:      writer,
		ValueSender: transferer,
		Queue:       persisters.Queue,
		Nonces:      persisters.Nonce,
		NonceSource: services.Lens,
		Cache:       services.Cache,
		Events:      services.Events,
		Notifier:    &submission.LogNotifier{},
	}), nil
}
