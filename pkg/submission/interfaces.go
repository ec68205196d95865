package submission

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
)

// Relay is the set of Lens relay mutations used by the submission flow
type Relay interface {
	CreateCommentViaDispatcher(ctx context.Context, req *model.OnChainCommentRequest) (*lens.RelayResult, error)
	CreateCommentTypedData(ctx context.Context, req *model.OnChainCommentRequest, nonce int64) (*lens.TypedDataResult, error)
	Broadcast(ctx context.Context, id string, signature string) (*lens.RelayResult, error)
	CreateDataAvailabilityCommentViaDispatcher(ctx context.Context, req *model.DataAvailabilityCommentRequest) (*lens.DataAvailabilityResult, error)
	CreateDataAvailabilityCommentTypedData(ctx context.Context, req *model.DataAvailabilityCommentRequest) (*lens.TypedDataResult, error)
	BroadcastDataAvailability(ctx context.Context, id string, signature string) (*lens.DataAvailabilityResult, error)
}

// Signer signs typed data. Declined requests return signer.ErrSignatureCancelled.
type Signer interface {
	SignTypedData(ctx context.Context, td *lens.CommentTypedData) (string, error)
}

// NonceSource returns the LensHub signature nonce of the authenticated profile
type NonceSource interface {
	UserSigNonce(ctx context.Context) (int64, error)
}

// CommentWriter writes a comment directly to LensHub and returns the tx hash
type CommentWriter interface {
	Comment(ctx context.Context, value *lens.CommentTypedDataValue) (string, error)
}

// ValueSender sends native value and returns the tx hash
type ValueSender interface {
	SendValue(ctx context.Context, to common.Address, wei *big.Int) (string, error)
}

// PublicationFetcher fetches a publication by id
type PublicationFetcher interface {
	Publication(ctx context.Context, publicationID string) (*model.Publication, error)
}

// CommentCache refreshes a freshly created publication into the local cache
type CommentCache interface {
	FetchAndCache(ctx context.Context, publicationID string) error
}
