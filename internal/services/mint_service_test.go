package services

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyscan/mintyscan-backend/internal/models"
	"github.com/mintyscan/mintyscan-backend/internal/signer"
	"github.com/mintyscan/mintyscan-backend/internal/worker"
)

const testWallet = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

// in-memory ledger standing in for the postgres repo
type fakeMints struct {
	mu         sync.Mutex
	records    []models.MintRecord
	failCreate bool
	failList   bool
	failDelete bool
}

func (f *fakeMints) Create(_ context.Context, m models.MintRecord) (models.MintRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return models.MintRecord{}, errors.New("connection refused")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()
	f.records = append(f.records, m)
	return m, nil
}

func (f *fakeMints) List(context.Context) ([]models.MintRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errors.New("connection refused")
	}
	out := make([]models.MintRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeMints) DeleteAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("connection refused")
	}
	f.records = nil
	return nil
}

func (f *fakeMints) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeMints) seed(userID, wallet string, amt float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, models.MintRecord{
		ID: uuid.NewString(), UserID: userID, Recipient: wallet, Amount: amt, CreatedAt: time.Now(),
	})
}

type fakeAudit struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAudit) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logs)
}

func newTestSigner(t *testing.T) *signer.Signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sg, err := signer.New(hex.EncodeToString(crypto.FromECDSA(key)))
	require.NoError(t, err)
	return sg
}

func TestIssueAuthorizationMissingFields(t *testing.T) {
	fm := &fakeMints{}
	svc := NewMintService(fm, nil, newTestSigner(t), nil)

	for _, tc := range [][3]string{
		{"", testWallet, "1.5"},
		{"user-1", "", "1.5"},
		{"user-1", testWallet, ""},
		{"", "", ""},
	} {
		_, err := svc.IssueAuthorization(context.Background(), tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, ErrValidation, "inputs %v", tc)
	}
	assert.Equal(t, 0, fm.size(), "failed requests must not write to the ledger")
}

func TestIssueAuthorizationBadAmount(t *testing.T) {
	fm := &fakeMints{}
	svc := NewMintService(fm, nil, newTestSigner(t), nil)

	for _, amt := range []string{"abc", "0", "-2", "0.0000000000000000001"} {
		_, err := svc.IssueAuthorization(context.Background(), "user-1", testWallet, amt)
		assert.ErrorIs(t, err, ErrValidation, "amount %q", amt)
	}
	assert.Equal(t, 0, fm.size())
}

func TestIssueAuthorizationNoSigningKey(t *testing.T) {
	fm := &fakeMints{}
	svc := NewMintService(fm, nil, nil, nil)

	_, err := svc.IssueAuthorization(context.Background(), "user-1", testWallet, "1.5")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, fm.size())
}

func TestIssueAuthorizationStorageFailure(t *testing.T) {
	fm := &fakeMints{failCreate: true}
	svc := NewMintService(fm, nil, newTestSigner(t), nil)

	_, err := svc.IssueAuthorization(context.Background(), "user-1", testWallet, "1.5")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestIssueAuthorizationSuccess(t *testing.T) {
	fm := &fakeMints{}
	fa := &fakeAudit{}
	sg := newTestSigner(t)
	wp := worker.NewPool(1)

	svc := NewMintService(fm, fa, sg, wp)
	sigHex, err := svc.IssueAuthorization(context.Background(), "user-1", testWallet, "1.5")
	require.NoError(t, err)

	// ledger row carries the original whole-unit amount
	require.Equal(t, 1, fm.size())
	rec := fm.records[0]
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, testWallet, rec.Recipient)
	assert.Equal(t, 1.5, rec.Amount)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	// signature recovers to the configured signer over the fixed digest
	sig, err := hexutil.Decode(sigHex)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	sig[64] -= 27
	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)
	digest := signer.MintDigest(common.HexToAddress(testWallet), wei, "user-1")
	pub, err := crypto.SigToPub(signer.PersonalHash(digest), sig)
	require.NoError(t, err)
	assert.Equal(t, sg.Address(), crypto.PubkeyToAddress(*pub))

	// async audit flushed by Stop
	wp.Stop()
	assert.Equal(t, 1, fa.count())
}

// Two identical requests are two independent rows and two signatures; nothing
// deduplicates on this side.
func TestIssueAuthorizationNoIdempotency(t *testing.T) {
	fm := &fakeMints{}
	svc := NewMintService(fm, nil, newTestSigner(t), nil)

	_, err := svc.IssueAuthorization(context.Background(), "user-1", testWallet, "2")
	require.NoError(t, err)
	_, err = svc.IssueAuthorization(context.Background(), "user-1", testWallet, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, fm.size())
}

// The ledger write lands before signing; a signing failure leaves the row in
// place with no signature issued.
func TestIssueAuthorizationSigningFailureKeepsRecord(t *testing.T) {
	fm := &fakeMints{}
	svc := NewMintService(fm, nil, newTestSigner(t), nil)

	_, err := svc.IssueAuthorization(context.Background(), "user-1", "not-a-hex-address", "1.5")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, fm.size())
}
