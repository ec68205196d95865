// Package helpers contains various common helper functions.
// Normally they are shared functions used by the cmds.
package helpers

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/chain"
	"github.com/tapexyz/tape-publisher/pkg/events"
	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/metadata"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/persistence"
	"github.com/tapexyz/tape-publisher/pkg/publisher"
	"github.com/tapexyz/tape-publisher/pkg/signer"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

// Persister is a helper function to return an interface{} that is a initialized
// persister type
func Persister(config *utils.PublisherConfig) (interface{}, error) {
	switch config.PersisterType {
	case utils.PersisterTypePostgresql:
		return postgresPersister(config)
	case utils.PersisterTypeMemory:
		return persistence.NewMemoryPersister(), nil
	}
	// Default to the NullPersister
	return &persistence.NullPersister{}, nil
}

// PendingTxPersister returns the pending queue persister of p
func PendingTxPersister(p interface{}) (model.PendingTxPersister, error) {
	persister, ok := p.(model.PendingTxPersister)
	if !ok {
		return nil, errors.New("persister is not a pending tx persister")
	}
	return persister, nil
}

// SigNoncePersister returns the sig nonce persister of p
func SigNoncePersister(p interface{}) (model.SigNoncePersister, error) {
	persister, ok := p.(model.SigNoncePersister)
	if !ok {
		return nil, errors.New("persister is not a sig nonce persister")
	}
	return persister, nil
}

// CronPersister returns the cron persister of p
func CronPersister(p interface{}) (model.CronPersister, error) {
	persister, ok := p.(model.CronPersister)
	if !ok {
		return nil, errors.New("persister is not a cron persister")
	}
	return persister, nil
}

func postgresPersister(config *utils.PublisherConfig) (*persistence.PostgresPersister, error) {
	persister, err := persistence.NewPostgresPersister(
		config.PersisterPostgresAddress,
		config.PersisterPostgresPort,
		config.PersisterPostgresUser,
		config.PersisterPostgresPw,
		config.PersisterPostgresDbname,
	)
	if err != nil {
		return nil, err
	}
	// Attempts to create all the necessary tables here
	err = persister.CreateTables()
	if err != nil {
		return nil, err
	}
	return persister, nil
}

// LensClient returns the Lens API client for the configured environment
func LensClient(config *utils.PublisherConfig) *lens.Client {
	return lens.NewClient(config.LensAPIURL, config.LensAccessToken)
}

// MetadataBuilder returns the metadata builder for the configured app
func MetadataBuilder(config *utils.PublisherConfig) *metadata.Builder {
	return metadata.NewBuilder(&metadata.BuilderConfig{
		AppID:      config.AppID,
		WebsiteURL: config.WebsiteURL,
		Locale:     config.Locale,
	})
}

// ContentPublisher returns the metadata publisher
func ContentPublisher(config *utils.PublisherConfig) publisher.Publisher {
	return publisher.NewArweavePublisher(config.MetadataUploadURL, nil)
}

// KeySigner returns the typed data signer of the configured key
func KeySigner(config *utils.PublisherConfig) (*signer.KeySigner, error) {
	return signer.NewKeySignerFromHex(config.SignerPrivateKey)
}

// ChainWriters returns the LensHub writer and the value transferer using
// client, both signing with key
func ChainWriters(config *utils.PublisherConfig, client *ethclient.Client,
	keySigner *signer.KeySigner) (*chain.LensHubWriter, *chain.Transferer, error) {
	chainID := big.NewInt(config.ChainID)
	writer, err := chain.NewLensHubWriter(client, common.HexToAddress(config.LensHubProxyAddress),
		keySigner.PrivateKey(), chainID)
	if err != nil {
		return nil, nil, err
	}
	transferer := chain.NewTransferer(client, keySigner.PrivateKey(), chainID)
	return writer, transferer, nil
}

// EventsPublisher returns the Google PubSub events publisher, or a
// NullPublisher if no project is configured
func EventsPublisher(ctx context.Context, config *utils.PublisherConfig) (events.Publisher, error) {
	// If no project ID, disable
	if config.PubSubProjectID == "" {
		log.Infof("No PubSub project configured, not publishing events")
		return &events.NullPublisher{}, nil
	}
	return events.NewGooglePubSub(ctx, config.PubSubProjectID, config.PubSubEventsTopicName,
		config.PubSubCredentialsFile)
}
