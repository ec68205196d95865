// Package chain contains the direct on-chain writes: LensHub comments and
// native value tip transfers
package chain // import "github.com/tapexyz/tape-publisher/pkg/chain"

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
)

const (
	commentMethod = "comment"

	// lensHubCommentABI is the subset of the LensHub proxy ABI used here
	lensHubCommentABI = `[{"inputs":[{"components":[
		{"internalType":"uint256","name":"profileId","type":"uint256"},
		{"internalType":"string","name":"contentURI","type":"string"},
		{"internalType":"uint256","name":"profileIdPointed","type":"uint256"},
		{"internalType":"uint256","name":"pubIdPointed","type":"uint256"},
		{"internalType":"bytes","name":"referenceModuleData","type":"bytes"},
		{"internalType":"address","name":"collectModule","type":"address"},
		{"internalType":"bytes","name":"collectModuleInitData","type":"bytes"},
		{"internalType":"address","name":"referenceModule","type":"address"},
		{"internalType":"bytes","name":"referenceModuleInitData","type":"bytes"}],
		"internalType":"struct DataTypes.CommentData","name":"vars","type":"tuple"}],
		"name":"comment","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],
		"stateMutability":"nonpayable","type":"function"}]`
)

// CommentData is the LensHub DataTypes.CommentData struct
type CommentData struct {
	ProfileID               *big.Int       `abi:"profileId"`
	ContentURI              string         `abi:"contentURI"`
	ProfileIDPointed        *big.Int       `abi:"profileIdPointed"`
	PubIDPointed            *big.Int       `abi:"pubIdPointed"`
	ReferenceModuleData     []byte         `abi:"referenceModuleData"`
	CollectModule           common.Address `abi:"collectModule"`
	CollectModuleInitData   []byte         `abi:"collectModuleInitData"`
	ReferenceModule         common.Address `abi:"referenceModule"`
	ReferenceModuleInitData []byte         `abi:"referenceModuleInitData"`
}

// CommentDataFromTypedData converts the signed typed data value into the
// contract call argument
func CommentDataFromTypedData(value *lens.CommentTypedDataValue) (*CommentData, error) {
	if value == nil {
		return nil, errors.New("no typed data value")
	}
	profileID, ok := math.ParseBig256(value.ProfileID)
	if !ok {
		return nil, errors.Errorf("invalid profile id %v", value.ProfileID)
	}
	profileIDPointed, ok := math.ParseBig256(value.ProfileIDPointed)
	if !ok {
		return nil, errors.Errorf("invalid pointed profile id %v", value.ProfileIDPointed)
	}
	pubIDPointed, ok := math.ParseBig256(value.PubIDPointed)
	if !ok {
		return nil, errors.Errorf("invalid pointed publication id %v", value.PubIDPointed)
	}
	refData, err := decodeBytes(value.ReferenceModuleData)
	if err != nil {
		return nil, errors.Wrap(err, "invalid reference module data")
	}
	collectInit, err := decodeBytes(value.CollectModuleInitData)
	if err != nil {
		return nil, errors.Wrap(err, "invalid collect module init data")
	}
	refInit, err := decodeBytes(value.ReferenceModuleInitData)
	if err != nil {
		return nil, errors.Wrap(err, "invalid reference module init data")
	}
	return &CommentData{
		ProfileID:               profileID,
		ContentURI:              value.ContentURI,
		ProfileIDPointed:        profileIDPointed,
		PubIDPointed:            pubIDPointed,
		ReferenceModuleData:     refData,
		CollectModule:           common.HexToAddress(value.CollectModule),
		CollectModuleInitData:   collectInit,
		ReferenceModule:         common.HexToAddress(value.ReferenceModule),
		ReferenceModuleInitData: refInit,
	}, nil
}

// NewLensHubWriter returns a writer calling the LensHub proxy at address,
// sending transactions signed by key
func NewLensHubWriter(backend bind.ContractBackend, address common.Address,
	key *ecdsa.PrivateKey, chainID *big.Int) (*LensHubWriter, error) {
	parsed, err := abi.JSON(strings.NewReader(lensHubCommentABI))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing lenshub abi")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "error creating transactor")
	}
	return &LensHubWriter{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		opts:     opts,
	}, nil
}

// LensHubWriter sends direct LensHub comment transactions. This spends gas
// and is never retried.
type LensHubWriter struct {
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

// Comment calls LensHub.comment with the typed data value and returns the
// transaction hash
func (w *LensHubWriter) Comment(ctx context.Context, value *lens.CommentTypedDataValue) (string, error) {
	data, err := CommentDataFromTypedData(value)
	if err != nil {
		return "", err
	}
	opts := *w.opts
	opts.Context = ctx
	tx, err := w.contract.Transact(&opts, commentMethod, *data)
	if err != nil {
		return "", errors.Wrap(err, "error sending lenshub comment")
	}
	log.Infof("Sent lenshub comment tx %v for profile %v", tx.Hash().Hex(), value.ProfileID)
	return tx.Hash().Hex(), nil
}

// PackComment returns the calldata of a LensHub comment call
func PackComment(data *CommentData) ([]byte, error) {
	parsed, err := abi.JSON(strings.NewReader(lensHubCommentABI))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing lenshub abi")
	}
	return parsed.Pack(commentMethod, *data)
}

func decodeBytes(s string) ([]byte, error) {
	if s == "" || s == "0x" {
		return []byte{}, nil
	}
	return hexutil.Decode(s)
}
