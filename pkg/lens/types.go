package lens

import (
	"github.com/tapexyz/tape-publisher/pkg/model"
)

// Typenames of the relay union results
const (
	TypenameRelayerResult    = "RelayerResult"
	TypenameRelayError       = "RelayError"
	TypenameDataAvailability = "CreateDataAvailabilityPublicationResult"
	TypenameTxIndexedResult  = "TransactionIndexedResult"
	TypenameTransactionError = "TransactionError"
)

// GraphQL input types. The Go type names are the Lens schema input names.

// CreatePublicCommentRequest is the Lens input for on-chain comments
type CreatePublicCommentRequest model.OnChainCommentRequest

// CreateDataAvailabilityCommentRequest is the Lens input for Momoka comments
type CreateDataAvailabilityCommentRequest model.DataAvailabilityCommentRequest

// TypedDataOptions overrides the signature nonce used in typed data
type TypedDataOptions struct {
	OverrideSigNonce int64 `json:"overrideSigNonce"`
}

// BroadcastRequest carries a typed data id and its signature
type BroadcastRequest struct {
	ID        string `json:"id"`
	Signature string `json:"signature"`
}

// PublicationQueryRequest selects a single publication
type PublicationQueryRequest struct {
	PublicationID string `json:"publicationId"`
}

// SingleProfileQueryRequest selects a single profile
type SingleProfileQueryRequest struct {
	ProfileID string `json:"profileId"`
}

// HasTxHashBeenIndexedRequest selects a relayer transaction
type HasTxHashBeenIndexedRequest struct {
	TxID string `json:"txId"`
}

// RelayResult is the outcome of a relayed on-chain action
type RelayResult struct {
	Typename string
	TxID     string
	TxHash   string
	Reason   string
}

// IsRelayError returns true if the relayer rejected the action
func (r *RelayResult) IsRelayError() bool {
	return r.Typename == TypenameRelayError
}

// DataAvailabilityResult is the outcome of a relayed Momoka action
type DataAvailabilityResult struct {
	Typename string
	ID       string
	Reason   string
}

// IsRelayError returns true if the relayer rejected the action
func (r *DataAvailabilityResult) IsRelayError() bool {
	return r.Typename == TypenameRelayError
}

// TypedDataField is a single EIP-712 type member
type TypedDataField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TypedDataDomain is the EIP-712 domain returned by Lens
type TypedDataDomain struct {
	Name              string `json:"name"`
	ChainID           int64  `json:"chainId"`
	Version           string `json:"version"`
	VerifyingContract string `json:"verifyingContract"`
}

// CommentTypedDataValue is the CommentWithSig message. It is also the
// argument of a direct LensHub comment write.
type CommentTypedDataValue struct {
	Nonce                   int64  `json:"nonce"`
	Deadline                int64  `json:"deadline"`
	ProfileID               string `json:"profileId"`
	ContentURI              string `json:"contentURI"`
	ProfileIDPointed        string `json:"profileIdPointed"`
	PubIDPointed            string `json:"pubIdPointed"`
	ReferenceModuleData     string `json:"referenceModuleData"`
	CollectModule           string `json:"collectModule"`
	CollectModuleInitData   string `json:"collectModuleInitData"`
	ReferenceModule         string `json:"referenceModule"`
	ReferenceModuleInitData string `json:"referenceModuleInitData"`
}

// CommentTypedData is the server provided structure to be signed
type CommentTypedData struct {
	PrimaryType string
	Types       []*TypedDataField
	Domain      *TypedDataDomain
	Value       *CommentTypedDataValue
}

// TypedDataResult is the typed data and the id used to broadcast its signature
type TypedDataResult struct {
	ID        string
	ExpiresAt string
	TypedData *CommentTypedData
}

// TxIndexedResult is the indexing status of a relayer transaction
type TxIndexedResult struct {
	Typename string
	Indexed  bool
	TxHash   string
	Reason   string
}
