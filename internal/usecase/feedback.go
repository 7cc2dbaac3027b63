package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/domain"
)

type SubmitFeedbackInput struct {
	EventID       string
	WalletAddress string
	Text          string
	TxnID         string
}

type SubmitFeedbackResult struct {
	Feedback    domain.Feedback
	SideEffects domain.SideEffects
}

// SentimentScaler maps the raw lexicon score into the 0-100 range the oracle
// stores in its feedback dimension.
type SentimentScaler interface {
	SentimentScorer
	Scale(score float64) uint64
}

type FeedbackUsecase struct {
	events     EventRepository
	feedback   FeedbackRepository
	sentiment  SentimentScaler
	incentives incentives
	salt       string
}

func NewFeedbackUsecase(
	events EventRepository,
	feedback FeedbackRepository,
	sentiment SentimentScaler,
	oracle ReputationOracle,
	rewards RewardLedger,
	salt string,
) *FeedbackUsecase {
	return &FeedbackUsecase{
		events:     events,
		feedback:   feedback,
		sentiment:  sentiment,
		incentives: incentives{oracle: oracle, rewards: rewards},
		salt:       salt,
	}
}

// Submit stores an anonymous feedback row. Only the wallet hash is persisted;
// the raw address is used transiently for the incentive calls and discarded.
func (uc *FeedbackUsecase) Submit(ctx context.Context, input SubmitFeedbackInput) (SubmitFeedbackResult, error) {

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return SubmitFeedbackResult{}, domain.ValidationError{Reason: "feedback text is required"}
	}
	if input.WalletAddress == "" {
		return SubmitFeedbackResult{}, domain.ValidationError{Reason: "wallet address is required"}
	}

	event, err := uc.events.GetByEventID(ctx, input.EventID)
	if err != nil {
		return SubmitFeedbackResult{}, err
	}
	if err := windowError(event.Window(time.Now()), "Event"); err != nil {
		return SubmitFeedbackResult{}, err
	}

	walletHash := ccms.HashIdentity(input.WalletAddress, uc.salt)

	if _, err := uc.feedback.Find(ctx, input.EventID, walletHash); err == nil {
		return SubmitFeedbackResult{}, domain.ConflictError{Reason: "feedback already submitted for this event"}
	}

	label, score := uc.sentiment.Analyze(text)

	record, err := uc.feedback.Create(ctx, domain.Feedback{
		EventID:        input.EventID,
		WalletHash:     walletHash,
		ContentHash:    ccms.HashContent(text),
		Text:           text,
		Sentiment:      label,
		SentimentScore: score,
		TxnID:          input.TxnID,
	})
	if err != nil {
		return SubmitFeedbackResult{}, err
	}

	effects := uc.incentives.apply(ctx, input.WalletAddress,
		domain.ReputationScores{Feedback: uc.sentiment.Scale(score)}, domain.RewardFeedback)

	return SubmitFeedbackResult{Feedback: record, SideEffects: effects}, nil
}

// Analytics aggregates sentiment for an event. Free text never leaves this
// method; faculty dashboards see counts and the average score only.
func (uc *FeedbackUsecase) Analytics(ctx context.Context, eventID string) (domain.FeedbackAnalytics, error) {

	if _, err := uc.events.GetByEventID(ctx, eventID); err != nil {
		return domain.FeedbackAnalytics{}, err
	}

	rows, err := uc.feedback.ListByEvent(ctx, eventID)
	if err != nil {
		return domain.FeedbackAnalytics{}, err
	}

	var analytics domain.FeedbackAnalytics
	var sum float64
	for _, row := range rows {
		analytics.Total++
		sum += row.SentimentScore
		switch row.Sentiment {
		case domain.SentimentPositive:
			analytics.Positive++
		case domain.SentimentNegative:
			analytics.Negative++
		default:
			analytics.Neutral++
		}
	}
	if analytics.Total > 0 {
		analytics.AverageScore = sum / float64(analytics.Total)
	}

	return analytics, nil
}

// ListByEvent returns the full rows, free text included. Restricted to
// admin/faculty at the HTTP layer.
func (uc *FeedbackUsecase) ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error) {
	return uc.feedback.ListByEvent(ctx, eventID)
}
