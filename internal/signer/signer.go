// Package signer issues mint authorizations: a secp256k1 signature over a
// packed keccak-256 digest of (recipient, amount, userId). The digest and
// signature formats are a bit-for-bit contract with the token contract's
// on-chain verification (solidity packed encoding + personal-message prefix +
// ecrecover), so nothing here may be approximated.
package signer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// personalPrefix is the standard Ethereum signed-message preamble for a
// 32-byte payload.
const personalPrefix = "\x19Ethereum Signed Message:\n32"

var ErrInvalidRecipient = errors.New("invalid recipient address")

type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// New parses a hex-encoded secp256k1 private key (with or without 0x prefix).
func New(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Address is the authorized signer address the contract checks recovered
// signatures against.
func (s *Signer) Address() common.Address { return s.address }

// MintDigest is keccak256(recipient || uint256(amountWei) || userId), the
// packed encoding of ['address','uint256','string'].
func MintDigest(recipient common.Address, amountWei *big.Int, userID string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(recipient.Bytes())
	h.Write(common.LeftPadBytes(amountWei.Bytes(), 32))
	h.Write([]byte(userID))
	return h.Sum(nil)
}

// PersonalHash wraps a 32-byte digest in the signed-message preamble and
// hashes again; this is what actually gets signed.
func PersonalHash(digest []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(personalPrefix))
	h.Write(digest)
	return h.Sum(nil)
}

// SignMint signs the mint digest for the given tuple and returns the 65-byte
// r||s||v signature hex-encoded, v in {27,28} as ecrecover expects.
func (s *Signer) SignMint(recipient string, amountWei *big.Int, userID string) (string, error) {
	if !common.IsHexAddress(recipient) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
	digest := MintDigest(common.HexToAddress(recipient), amountWei, userID)
	sig, err := crypto.Sign(PersonalHash(digest), s.key)
	if err != nil {
		return "", fmt.Errorf("sign digest: %w", err)
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}
