package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	log "github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	valueTransferGas = uint64(21000)
)

// TxBackend is the subset of ethclient.Client needed to send a transfer
type TxBackend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// NewTransferer returns a Transferer sending from the key address
func NewTransferer(backend TxBackend, key *ecdsa.PrivateKey, chainID *big.Int) *Transferer {
	return &Transferer{
		backend: backend,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		signer:  types.NewEIP155Signer(chainID),
	}
}

// Transferer sends native value transfers, used for tips
type Transferer struct {
	backend TxBackend
	key     *ecdsa.PrivateKey
	from    common.Address
	signer  types.Signer
}

// SendValue sends wei to the given address and returns the transaction hash
func (t *Transferer) SendValue(ctx context.Context, to common.Address, wei *big.Int) (string, error) {
	nonce, err := t.backend.PendingNonceAt(ctx, t.from)
	if err != nil {
		return "", errors.Wrap(err, "error getting pending nonce")
	}
	gasPrice, err := t.backend.SuggestGasPrice(ctx)
	if err != nil {
		return "", errors.Wrap(err, "error getting gas price")
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    wei,
		Gas:      valueTransferGas,
		GasPrice: gasPrice,
	})
	signed, err := types.SignTx(tx, t.signer, t.key)
	if err != nil {
		return "", errors.Wrap(err, "error signing transfer")
	}
	err = t.backend.SendTransaction(ctx, signed)
	if err != nil {
		return "", errors.Wrap(err, "error sending transfer")
	}
	log.Infof("Sent %v wei from %v to %v: tx %v", wei, t.from.Hex(), to.Hex(), signed.Hash().Hex())
	return signed.Hash().Hex(), nil
}

// EtherToWei converts a decimal ether (or MATIC) amount into wei. Amounts
// with more than 18 decimals are rejected.
func EtherToWei(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	rat, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, errors.Errorf("invalid amount %q", amount)
	}
	rat.Mul(rat, new(big.Rat).SetInt(big.NewInt(params.Ether)))
	if !rat.IsInt() {
		return nil, errors.Errorf("amount %q has too many decimals", amount)
	}
	return rat.Num(), nil
}
