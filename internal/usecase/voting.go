package usecase

import (
	"context"
	"time"

	"github.com/campuschain/ccms/internal/domain"
)

type CreateElectionInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	VotingAppID uint64
	CreatedBy   string
}

type CastVoteInput struct {
	ElectionID string
	UserID     string
	VoteHash   string
	TxnID      string
}

type CastVoteResult struct {
	Vote        domain.Vote
	SideEffects domain.SideEffects
}

type VotingUsecase struct {
	elections  ElectionRepository
	votes      VoteRepository
	users      UserRepository
	verifier   TxnVerifier
	incentives incentives
}

func NewVotingUsecase(
	elections ElectionRepository,
	votes VoteRepository,
	users UserRepository,
	verifier TxnVerifier,
	oracle ReputationOracle,
	rewards RewardLedger,
) *VotingUsecase {
	return &VotingUsecase{
		elections:  elections,
		votes:      votes,
		users:      users,
		verifier:   verifier,
		incentives: incentives{oracle: oracle, rewards: rewards},
	}
}

func (uc *VotingUsecase) CreateElection(ctx context.Context, input CreateElectionInput) (domain.Election, error) {

	if input.Title == "" {
		return domain.Election{}, domain.ValidationError{Reason: "title is required"}
	}
	if !input.EndTime.After(input.StartTime) {
		return domain.Election{}, domain.ValidationError{Reason: "end time must be after start time"}
	}

	return uc.elections.Create(ctx, domain.Election{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		VotingAppID: input.VotingAppID,
		CreatedBy:   input.CreatedBy,
		IsActive:    true,
	})
}

// CastVote records a commitment for a user. The commitment is stored
// verbatim; no reveal or tally happens here. Votes have no status column, so
// when the election requires ledger verification it happens before the
// insert and an invalid transaction leaves no row behind.
func (uc *VotingUsecase) CastVote(ctx context.Context, input CastVoteInput) (CastVoteResult, error) {

	if input.VoteHash == "" {
		return CastVoteResult{}, domain.ValidationError{Reason: "vote hash is required"}
	}
	if input.TxnID == "" {
		return CastVoteResult{}, domain.ValidationError{Reason: "transaction id is required"}
	}

	election, err := uc.elections.Get(ctx, input.ElectionID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !election.IsActive {
		return CastVoteResult{}, domain.ValidationError{Reason: "Election is not active"}
	}
	if err := windowError(election.Window(time.Now()), "Election"); err != nil {
		return CastVoteResult{}, err
	}

	if _, err := uc.votes.Find(ctx, input.ElectionID, input.UserID); err == nil {
		return CastVoteResult{}, domain.ConflictError{Reason: "user has already cast a vote in this election"}
	}

	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return CastVoteResult{}, err
	}

	if election.VotingAppID != 0 {
		verification, err := uc.verifier.VerifyTransaction(ctx, input.TxnID, user.WalletAddress)
		if err != nil {
			return CastVoteResult{}, err
		}
		if !verification.Valid {
			return CastVoteResult{},
				domain.ValidationError{Reason: "transaction verification failed: " + verification.Reason}
		}
	}

	vote, err := uc.votes.Create(ctx, domain.Vote{
		ElectionID: input.ElectionID,
		UserID:     input.UserID,
		VoteHash:   input.VoteHash,
		TxnID:      input.TxnID,
	})
	if err != nil {
		return CastVoteResult{}, err
	}

	effects := uc.incentives.apply(ctx, user.WalletAddress,
		domain.ReputationScores{Voting: domain.ScoreVote}, domain.RewardVote)

	return CastVoteResult{Vote: vote, SideEffects: effects}, nil
}

func (uc *VotingUsecase) ListElections(ctx context.Context) ([]domain.Election, error) {
	return uc.elections.List(ctx)
}

func (uc *VotingUsecase) GetElection(ctx context.Context, id string) (domain.Election, error) {
	return uc.elections.Get(ctx, id)
}
