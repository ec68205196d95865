package lens

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

type profileFields struct {
	ID      string `graphql:"id"`
	Handle  string `graphql:"handle"`
	OwnedBy string `graphql:"ownedBy"`
}

type publicationFields struct {
	ID                 string `graphql:"id"`
	IsDataAvailability bool   `graphql:"isDataAvailability"`
	Metadata           struct {
		Name string `graphql:"name"`
	} `graphql:"metadata"`
	Profile profileFields `graphql:"profile"`
}

func (f *publicationFields) publication() *model.Publication {
	return model.NewPublication(&model.PublicationParams{
		ID:                 f.ID,
		IsDataAvailability: f.IsDataAvailability,
		MetadataName:       f.Metadata.Name,
		ProfileID:          f.Profile.ID,
		ProfileHandle:      f.Profile.Handle,
		OwnedBy:            common.HexToAddress(f.Profile.OwnedBy),
	})
}

// Publication fetches a post or comment by id. Returns
// model.ErrNoPersisterResults if it does not exist.
func (c *Client) Publication(ctx context.Context, publicationID string) (*model.Publication, error) {
	var q struct {
		Publication *struct {
			Typename string            `graphql:"__typename"`
			Post     publicationFields `graphql:"... on Post"`
			Comment  publicationFields `graphql:"... on Comment"`
		} `graphql:"publication(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": PublicationQueryRequest{PublicationID: publicationID},
	}
	err := c.query(ctx, &q, variables)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching publication %v", publicationID)
	}
	if q.Publication == nil {
		return nil, model.ErrNoPersisterResults
	}
	switch q.Publication.Typename {
	case "Post":
		return q.Publication.Post.publication(), nil
	case "Comment":
		return q.Publication.Comment.publication(), nil
	}
	return nil, errors.Errorf("unsupported publication type %v", q.Publication.Typename)
}

// Profile fetches a channel and its dispatcher by profile id. Returns
// model.ErrNoPersisterResults if it does not exist.
func (c *Client) Profile(ctx context.Context, profileID string) (*model.Channel, error) {
	var q struct {
		Profile *struct {
			ID         string `graphql:"id"`
			Handle     string `graphql:"handle"`
			OwnedBy    string `graphql:"ownedBy"`
			Dispatcher *struct {
				Address     string `graphql:"address"`
				CanUseRelay bool   `graphql:"canUseRelay"`
				Sponsor     bool   `graphql:"sponsor"`
			} `graphql:"dispatcher"`
		} `graphql:"profile(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": SingleProfileQueryRequest{ProfileID: profileID},
	}
	err := c.query(ctx, &q, variables)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching profile %v", profileID)
	}
	if q.Profile == nil {
		return nil, model.ErrNoPersisterResults
	}
	params := &model.ChannelParams{
		ID:      q.Profile.ID,
		Handle:  q.Profile.Handle,
		OwnedBy: common.HexToAddress(q.Profile.OwnedBy),
	}
	if q.Profile.Dispatcher != nil {
		params.Dispatcher = &model.Dispatcher{
			Address:     common.HexToAddress(q.Profile.Dispatcher.Address),
			CanUseRelay: q.Profile.Dispatcher.CanUseRelay,
			Sponsor:     q.Profile.Dispatcher.Sponsor,
		}
	}
	return model.NewChannel(params), nil
}

// HasTxHashBeenIndexed returns the indexing status of a relayer transaction
func (c *Client) HasTxHashBeenIndexed(ctx context.Context, txID string) (*TxIndexedResult, error) {
	var q struct {
		HasTxHashBeenIndexed struct {
			Typename string `graphql:"__typename"`
			Indexed  struct {
				Indexed bool   `graphql:"indexed"`
				TxHash  string `graphql:"txHash"`
			} `graphql:"... on TransactionIndexedResult"`
			TxError struct {
				Reason string `graphql:"reason"`
			} `graphql:"... on TransactionError"`
		} `graphql:"hasTxHashBeenIndexed(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": HasTxHashBeenIndexedRequest{TxID: txID},
	}
	err := c.query(ctx, &q, variables)
	if err != nil {
		return nil, errors.Wrapf(err, "error checking tx %v", txID)
	}
	res := q.HasTxHashBeenIndexed
	return &TxIndexedResult{
		Typename: res.Typename,
		Indexed:  res.Indexed.Indexed,
		TxHash:   res.Indexed.TxHash,
		Reason:   res.TxError.Reason,
	}, nil
}

// UserSigNonce returns the LensHub signature nonce of the authenticated
// profile
func (c *Client) UserSigNonce(ctx context.Context) (int64, error) {
	var q struct {
		UserSigNonces struct {
			LensHubOnChainSigNonce int64 `graphql:"lensHubOnChainSigNonce"`
		} `graphql:"userSigNonces"`
	}
	err := c.query(ctx, &q, nil)
	if err != nil {
		return 0, errors.Wrap(err, "error fetching user sig nonces")
	}
	return q.UserSigNonces.LensHubOnChainSigNonce, nil
}
