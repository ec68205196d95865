package lens

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

type relayerResultFragment struct {
	TxID   string `graphql:"txId"`
	TxHash string `graphql:"txHash"`
}

type relayErrorFragment struct {
	Reason string `graphql:"reason"`
}

type daResultFragment struct {
	ID string `graphql:"id"`
}

type relayResultUnion struct {
	Typename      string                `graphql:"__typename"`
	RelayerResult relayerResultFragment `graphql:"... on RelayerResult"`
	RelayError    relayErrorFragment    `graphql:"... on RelayError"`
}

func (u *relayResultUnion) result() *RelayResult {
	return &RelayResult{
		Typename: u.Typename,
		TxID:     u.RelayerResult.TxID,
		TxHash:   u.RelayerResult.TxHash,
		Reason:   u.RelayError.Reason,
	}
}

type daResultUnion struct {
	Typename         string             `graphql:"__typename"`
	DataAvailability daResultFragment   `graphql:"... on CreateDataAvailabilityPublicationResult"`
	RelayError       relayErrorFragment `graphql:"... on RelayError"`
}

func (u *daResultUnion) result() *DataAvailabilityResult {
	return &DataAvailabilityResult{
		Typename: u.Typename,
		ID:       u.DataAvailability.ID,
		Reason:   u.RelayError.Reason,
	}
}

type typedDataFieldGql struct {
	Name string `graphql:"name"`
	Type string `graphql:"type"`
}

type commentTypedDataGql struct {
	ID        string `graphql:"id"`
	ExpiresAt string `graphql:"expiresAt"`
	TypedData struct {
		Types struct {
			CommentWithSig []typedDataFieldGql `graphql:"CommentWithSig"`
		} `graphql:"types"`
		Domain struct {
			Name              string `graphql:"name"`
			ChainID           int64  `graphql:"chainId"`
			Version           string `graphql:"version"`
			VerifyingContract string `graphql:"verifyingContract"`
		} `graphql:"domain"`
		Value struct {
			Nonce                   int64  `graphql:"nonce"`
			Deadline                int64  `graphql:"deadline"`
			ProfileID               string `graphql:"profileId"`
			ContentURI              string `graphql:"contentURI"`
			ProfileIDPointed        string `graphql:"profileIdPointed"`
			PubIDPointed            string `graphql:"pubIdPointed"`
			ReferenceModuleData     string `graphql:"referenceModuleData"`
			CollectModule           string `graphql:"collectModule"`
			CollectModuleInitData   string `graphql:"collectModuleInitData"`
			ReferenceModule         string `graphql:"referenceModule"`
			ReferenceModuleInitData string `graphql:"referenceModuleInitData"`
		} `graphql:"value"`
	} `graphql:"typedData"`
}

func (g *commentTypedDataGql) result() *TypedDataResult {
	types := make([]*TypedDataField, len(g.TypedData.Types.CommentWithSig))
	for i, field := range g.TypedData.Types.CommentWithSig {
		types[i] = &TypedDataField{Name: field.Name, Type: field.Type}
	}
	domain := g.TypedData.Domain
	value := g.TypedData.Value
	return &TypedDataResult{
		ID:        g.ID,
		ExpiresAt: g.ExpiresAt,
		TypedData: &CommentTypedData{
			PrimaryType: "CommentWithSig",
			Types:       types,
			Domain: &TypedDataDomain{
				Name:              domain.Name,
				ChainID:           domain.ChainID,
				Version:           domain.Version,
				VerifyingContract: domain.VerifyingContract,
			},
			Value: &CommentTypedDataValue{
				Nonce:                   value.Nonce,
				Deadline:                value.Deadline,
				ProfileID:               value.ProfileID,
				ContentURI:              value.ContentURI,
				ProfileIDPointed:        value.ProfileIDPointed,
				PubIDPointed:            value.PubIDPointed,
				ReferenceModuleData:     value.ReferenceModuleData,
				CollectModule:           value.CollectModule,
				CollectModuleInitData:   value.CollectModuleInitData,
				ReferenceModule:         value.ReferenceModule,
				ReferenceModuleInitData: value.ReferenceModuleInitData,
			},
		},
	}
}

// CreateCommentViaDispatcher asks the dispatcher to comment on behalf of the
// channel
func (c *Client) CreateCommentViaDispatcher(ctx context.Context, req *model.OnChainCommentRequest) (
	*RelayResult, error) {
	var m struct {
		CreateCommentViaDispatcher relayResultUnion `graphql:"createCommentViaDispatcher(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": CreatePublicCommentRequest(*req),
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error creating comment via dispatcher")
	}
	return m.CreateCommentViaDispatcher.result(), nil
}

// CreateCommentTypedData returns the CommentWithSig typed data to sign,
// using nonce as the signature nonce
func (c *Client) CreateCommentTypedData(ctx context.Context, req *model.OnChainCommentRequest,
	nonce int64) (*TypedDataResult, error) {
	var m struct {
		CreateCommentTypedData commentTypedDataGql `graphql:"createCommentTypedData(options: $options, request: $request)"`
	}
	variables := map[string]interface{}{
		"options": TypedDataOptions{OverrideSigNonce: nonce},
		"request": CreatePublicCommentRequest(*req),
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error creating comment typed data")
	}
	return m.CreateCommentTypedData.result(), nil
}

// Broadcast relays a signed typed data
func (c *Client) Broadcast(ctx context.Context, id string, signature string) (*RelayResult, error) {
	var m struct {
		Broadcast relayResultUnion `graphql:"broadcast(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": BroadcastRequest{ID: id, Signature: signature},
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error broadcasting")
	}
	return m.Broadcast.result(), nil
}

// CreateDataAvailabilityCommentViaDispatcher asks the dispatcher to create a
// Momoka comment on behalf of the channel
func (c *Client) CreateDataAvailabilityCommentViaDispatcher(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) (*DataAvailabilityResult, error) {
	var m struct {
		CreateDataAvailabilityCommentViaDispatcher daResultUnion `graphql:"createDataAvailabilityCommentViaDispatcher(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": CreateDataAvailabilityCommentRequest(*req),
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error creating data availability comment via dispatcher")
	}
	return m.CreateDataAvailabilityCommentViaDispatcher.result(), nil
}

// CreateDataAvailabilityCommentTypedData returns the typed data to sign for a
// Momoka comment
func (c *Client) CreateDataAvailabilityCommentTypedData(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) (*TypedDataResult, error) {
	var m struct {
		CreateDataAvailabilityCommentTypedData commentTypedDataGql `graphql:"createDataAvailabilityCommentTypedData(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": CreateDataAvailabilityCommentRequest(*req),
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error creating data availability comment typed data")
	}
	return m.CreateDataAvailabilityCommentTypedData.result(), nil
}

// BroadcastDataAvailability relays a signed Momoka typed data
func (c *Client) BroadcastDataAvailability(ctx context.Context, id string, signature string) (
	*DataAvailabilityResult, error) {
	var m struct {
		BroadcastDataAvailability daResultUnion `graphql:"broadcastDataAvailability(request: $request)"`
	}
	variables := map[string]interface{}{
		"request": BroadcastRequest{ID: id, Signature: signature},
	}
	err := c.mutate(ctx, &m, variables)
	if err != nil {
		return nil, errors.Wrap(err, "error broadcasting data availability")
	}
	return m.BroadcastDataAvailability.result(), nil
}
