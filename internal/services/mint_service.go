package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mintyscan/mintyscan-backend/internal/amount"
	"github.com/mintyscan/mintyscan-backend/internal/api/validate"
	"github.com/mintyscan/mintyscan-backend/internal/metrics"
	"github.com/mintyscan/mintyscan-backend/internal/models"
	repo "github.com/mintyscan/mintyscan-backend/internal/repository"
	"github.com/mintyscan/mintyscan-backend/internal/signer"
	"github.com/mintyscan/mintyscan-backend/internal/worker"
)

type MintService struct {
	mints repo.Mints
	audit repo.AuditLogs
	sg    *signer.Signer // nil when no signing key is configured
	wp    *worker.Pool
}

func NewMintService(m repo.Mints, a repo.AuditLogs, sg *signer.Signer, wp *worker.Pool) *MintService {
	return &MintService{mints: m, audit: a, sg: sg, wp: wp}
}

// IssueAuthorization validates the request, appends a ledger row, then signs
// the mint digest. The row is written before signing: if signing fails the
// record stays with no signature issued. That inconsistency is accepted and
// logged, not rolled back.
func (s *MintService) IssueAuthorization(ctx context.Context, userID, recipient, amountStr string) (string, error) {
	var errs validate.Errs
	for _, c := range []struct{ field, value string }{
		{"userId", userID},
		{"wallet", recipient},
		{"amount", amountStr},
	} {
		if ef := validate.Required(c.field, c.value); ef != nil {
			errs = append(errs, *ef)
		}
	}
	if len(errs) > 0 {
		metrics.MintSignatureFailures.WithLabelValues("validation").Inc()
		return "", fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	amt, err := amount.Parse(amountStr)
	if err != nil {
		metrics.MintSignatureFailures.WithLabelValues("validation").Inc()
		return "", fmt.Errorf("%w: amount: %v", ErrValidation, err)
	}

	if s.sg == nil {
		metrics.MintSignatureFailures.WithLabelValues("configuration").Inc()
		return "", fmt.Errorf("%w: signing key not configured", ErrConfiguration)
	}

	wei, err := amount.ToWei(amt)
	if err != nil {
		metrics.MintSignatureFailures.WithLabelValues("validation").Inc()
		return "", fmt.Errorf("%w: amount: %v", ErrValidation, err)
	}

	rec, err := s.mints.Create(ctx, models.MintRecord{
		UserID:    userID,
		Recipient: recipient,
		Amount:    amt.InexactFloat64(),
	})
	if err != nil {
		metrics.MintSignatureFailures.WithLabelValues("storage").Inc()
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	sig, err := s.sg.SignMint(recipient, wei, userID)
	if err != nil {
		metrics.MintSignatureFailures.WithLabelValues("signing").Inc()
		slog.Error("mint record persisted but signing failed", "mint_id", rec.ID, "err", err)
		return "", fmt.Errorf("issue signature: %w", err)
	}

	metrics.MintSignaturesTotal.Inc()
	s.auditAuthorized(rec)
	return sig, nil
}

func (s *MintService) auditAuthorized(rec models.MintRecord) {
	if s.wp == nil || s.audit == nil {
		return
	}
	id := rec.ID
	s.wp.Submit(func() {
		_ = s.audit.Create(context.Background(), models.AuditLog{
			EntityType: "mint",
			EntityID:   &id,
			Action:     "authorized",
			Details:    map[string]any{"userId": rec.UserID, "amount": rec.Amount},
		})
	})
}
