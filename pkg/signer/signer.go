// Package signer signs Lens typed data (EIP-712) on behalf of a channel owner
package signer // import "github.com/tapexyz/tape-publisher/pkg/signer"

import (
	"bufio"
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
)

const (
	eip712DomainType = "EIP712Domain"

	// offset wallets add to the recovery id
	recoveryIDOffset = 27
)

// ErrSignatureCancelled is returned when the signature request is declined
var ErrSignatureCancelled = errors.New("signature request cancelled")

// IsCancelled returns true if the cause of err is a cancelled signature
func IsCancelled(err error) bool {
	return errors.Cause(err) == ErrSignatureCancelled
}

// NewKeySignerFromHex returns a KeySigner from a hex encoded secp256k1 key
func NewKeySignerFromHex(hexKey string) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid signer key")
	}
	return NewKeySigner(key), nil
}

// NewKeySigner returns a KeySigner for key
func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// KeySigner signs typed data with a local private key
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// Address returns the address of the signing key
func (k *KeySigner) Address() common.Address {
	return k.address
}

// PrivateKey returns the signing key, used for direct chain writes
func (k *KeySigner) PrivateKey() *ecdsa.PrivateKey {
	return k.key
}

// SignTypedData returns the 0x prefixed 65 byte signature over the typed data.
// A done context is treated as a cancelled request.
func (k *KeySigner) SignTypedData(ctx context.Context, td *lens.CommentTypedData) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrSignatureCancelled
	default:
	}
	hash, err := TypedDataHash(td)
	if err != nil {
		return "", err
	}
	sig, err := crypto.Sign(hash, k.key)
	if err != nil {
		return "", errors.Wrap(err, "error signing typed data")
	}
	sig[crypto.RecoveryIDOffset] += recoveryIDOffset
	log.V(2).Infof("Signed %v typed data as %v", td.PrimaryType, k.address.Hex())
	return hexutil.Encode(sig), nil
}

// NewPromptSigner wraps a KeySigner and asks for confirmation on in before
// each signature, like a wallet would
func NewPromptSigner(signer *KeySigner, in io.Reader, out io.Writer) *PromptSigner {
	return &PromptSigner{signer: signer, in: bufio.NewReader(in), out: out}
}

// PromptSigner asks the user to approve each signature request
type PromptSigner struct {
	signer *KeySigner
	in     *bufio.Reader
	out    io.Writer
}

// SignTypedData prompts and signs. Anything but "y" or "yes" cancels.
func (p *PromptSigner) SignTypedData(ctx context.Context, td *lens.CommentTypedData) (string, error) {
	fmt.Fprintf(p.out, "Sign %v for profile %v as %v? [y/N] ", // nolint: errcheck
		td.PrimaryType, td.Value.ProfileID, p.signer.Address().Hex())
	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "error reading signature confirmation")
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		return "", ErrSignatureCancelled
	}
	return p.signer.SignTypedData(ctx, td)
}

// TypedDataHash returns the EIP-712 digest of the Lens typed data
func TypedDataHash(td *lens.CommentTypedData) ([]byte, error) {
	typedData, err := ToAPITypedData(td)
	if err != nil {
		return nil, err
	}
	hash, _, err := apitypes.TypedDataAndHash(*typedData)
	if err != nil {
		return nil, errors.Wrap(err, "error hashing typed data")
	}
	return hash, nil
}

// RecoverSigner returns the address that produced sig over the typed data
func RecoverSigner(td *lens.CommentTypedData, sig string) (common.Address, error) {
	hash, err := TypedDataHash(td)
	if err != nil {
		return common.Address{}, err
	}
	sigBytes, err := hexutil.Decode(sig)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid signature")
	}
	if len(sigBytes) != crypto.SignatureLength {
		return common.Address{}, errors.Errorf("invalid signature length %v", len(sigBytes))
	}
	sigBytes[crypto.RecoveryIDOffset] -= recoveryIDOffset
	pub, err := crypto.SigToPub(hash, sigBytes)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "error recovering signer")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// ToAPITypedData converts the Lens typed data into the go-ethereum EIP-712
// representation
func ToAPITypedData(td *lens.CommentTypedData) (*apitypes.TypedData, error) {
	if td == nil || td.Domain == nil || td.Value == nil {
		return nil, errors.New("incomplete typed data")
	}
	primary := make([]apitypes.Type, len(td.Types))
	values := messageValues(td.Value)
	message := apitypes.TypedDataMessage{}
	for i, field := range td.Types {
		primary[i] = apitypes.Type{Name: field.Name, Type: field.Type}
		val, ok := values[field.Name]
		if !ok {
			return nil, errors.Errorf("no value for typed data field %v", field.Name)
		}
		message[field.Name] = val
	}
	return &apitypes.TypedData{
		Types: apitypes.Types{
			eip712DomainType: []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			td.PrimaryType: primary,
		},
		PrimaryType: td.PrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              td.Domain.Name,
			Version:           td.Domain.Version,
			ChainId:           math.NewHexOrDecimal256(td.Domain.ChainID),
			VerifyingContract: td.Domain.VerifyingContract,
		},
		Message: message,
	}, nil
}

func messageValues(v *lens.CommentTypedDataValue) map[string]interface{} {
	return map[string]interface{}{
		"nonce":                   strconv.FormatInt(v.Nonce, 10),
		"deadline":                strconv.FormatInt(v.Deadline, 10),
		"profileId":               v.ProfileID,
		"contentURI":              v.ContentURI,
		"profileIdPointed":        v.ProfileIDPointed,
		"pubIdPointed":            v.PubIDPointed,
		"referenceModuleData":     emptyBytes(v.ReferenceModuleData),
		"collectModule":           v.CollectModule,
		"collectModuleInitData":   emptyBytes(v.CollectModuleInitData),
		"referenceModule":         v.ReferenceModule,
		"referenceModuleInitData": emptyBytes(v.ReferenceModuleInitData),
	}
}

func emptyBytes(b string) string {
	if b == "" {
		return "0x"
	}
	return b
}
