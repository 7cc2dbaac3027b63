package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/domain"
)

// IssueCertificateInput identifies the participant the same way attendance
// does: user id on the authenticated path, wallet address otherwise.
type IssueCertificateInput struct {
	EventID       string
	WalletAddress string
	TxnID         string
	UserID        string
}

type IssueCertificateResult struct {
	Certificate domain.Certificate
	SideEffects domain.SideEffects
}

// Eligibility reports whether a participant has attended enough to receive a
// certificate for an event.
type Eligibility struct {
	Eligible  bool  `json:"eligible"`
	Confirmed int64 `json:"confirmed"`
	Threshold int64 `json:"threshold"`
}

type CertificateUsecase struct {
	events       EventRepository
	certificates CertificateRepository
	attendance   AttendanceRepository
	verifier     TxnVerifier
	incentives   incentives
	threshold    int64
	salt         string
}

func NewCertificateUsecase(
	events EventRepository,
	certificates CertificateRepository,
	attendance AttendanceRepository,
	verifier TxnVerifier,
	oracle ReputationOracle,
	rewards RewardLedger,
	threshold int64,
	salt string,
) *CertificateUsecase {
	if threshold < 1 {
		threshold = 1
	}
	return &CertificateUsecase{
		events:       events,
		certificates: certificates,
		attendance:   attendance,
		verifier:     verifier,
		incentives:   incentives{oracle: oracle, rewards: rewards},
		threshold:    threshold,
		salt:         salt,
	}
}

func (uc *CertificateUsecase) participantKey(input IssueCertificateInput) (string, error) {
	if input.UserID != "" {
		return input.UserID, nil
	}
	if input.WalletAddress == "" {
		return "", domain.ValidationError{Reason: "wallet address is required"}
	}
	return ccms.HashIdentity(input.WalletAddress, uc.salt), nil
}

// Issue creates a certificate for a participant who has met the attendance
// threshold. Ledger interaction here is advisory: a failed or absent
// transaction leaves the record PENDING and still succeeds.
func (uc *CertificateUsecase) Issue(ctx context.Context, input IssueCertificateInput) (IssueCertificateResult, error) {

	event, err := uc.events.GetByEventID(ctx, input.EventID)
	if err != nil {
		return IssueCertificateResult{}, err
	}

	participantKey, err := uc.participantKey(input)
	if err != nil {
		return IssueCertificateResult{}, err
	}

	confirmed, err := uc.attendance.CountConfirmed(ctx, input.EventID, participantKey)
	if err != nil {
		return IssueCertificateResult{}, err
	}
	if confirmed < uc.threshold {
		return IssueCertificateResult{}, domain.ValidationError{Reason: "attendance requirement not met for this event"}
	}

	if _, err := uc.certificates.Find(ctx, input.EventID, participantKey); err == nil {
		return IssueCertificateResult{}, domain.ConflictError{Reason: "certificate already issued"}
	}

	walletHash := ""
	if input.WalletAddress != "" {
		walletHash = ccms.HashIdentity(input.WalletAddress, uc.salt)
	}

	record, err := uc.certificates.Create(ctx, domain.Certificate{
		EventID:         input.EventID,
		ParticipantKey:  participantKey,
		WalletAddress:   input.WalletAddress,
		WalletHash:      walletHash,
		CertificateHash: ccms.HashContent("certificate:" + input.EventID + ":" + participantKey),
		TxnID:           input.TxnID,
		Status:          domain.CertificatePending,
	})
	if err != nil {
		return IssueCertificateResult{}, err
	}

	if event.CertificateAssetID != 0 && input.TxnID != "" {
		verification, err := uc.verifier.VerifyTransaction(ctx, input.TxnID, input.WalletAddress)
		if err == nil && verification.Valid {
			issuedAt := time.Now()
			if err := uc.certificates.Finalize(ctx, record.ID, domain.CertificateTransferred,
				event.CertificateAssetID, input.TxnID, issuedAt); err == nil {
				record.Status = domain.CertificateTransferred
				record.AssetID = event.CertificateAssetID
				record.IssuedAt = &issuedAt
			}
		} else {
			reason := ""
			if err != nil {
				reason = err.Error()
			} else {
				reason = verification.Reason
			}
			slog.WarnContext(
				ctx, "Certificate transaction not confirmed on ledger",
				slog.String("reason", reason),
				slog.String("module", "certificate"),
			)
		}
	}

	effects := uc.incentives.apply(ctx, input.WalletAddress,
		domain.ReputationScores{Certification: domain.ScoreCertification}, domain.RewardCertificate)

	return IssueCertificateResult{Certificate: record, SideEffects: effects}, nil
}

// CheckEligibility reports the confirmed-attendance count against the
// configured threshold without issuing anything.
func (uc *CertificateUsecase) CheckEligibility(ctx context.Context, eventID, walletAddress, userID string) (Eligibility, error) {

	if _, err := uc.events.GetByEventID(ctx, eventID); err != nil {
		return Eligibility{}, err
	}

	participantKey, err := uc.participantKey(IssueCertificateInput{WalletAddress: walletAddress, UserID: userID})
	if err != nil {
		return Eligibility{}, err
	}

	confirmed, err := uc.attendance.CountConfirmed(ctx, eventID, participantKey)
	if err != nil {
		return Eligibility{}, err
	}

	return Eligibility{
		Eligible:  confirmed >= uc.threshold,
		Confirmed: confirmed,
		Threshold: uc.threshold,
	}, nil
}

// VerifyByHash is the public verification lookup.
func (uc *CertificateUsecase) VerifyByHash(ctx context.Context, certificateHash string) (domain.Certificate, error) {
	return uc.certificates.GetByHash(ctx, certificateHash)
}

// My returns the caller's certificates.
func (uc *CertificateUsecase) My(ctx context.Context, participantKey string) ([]domain.Certificate, error) {
	return uc.certificates.ListByParticipant(ctx, participantKey)
}
