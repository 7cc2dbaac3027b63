package domain

// Incentive policy. Reward amounts are in base units of the campus credit
// token; score deltas feed the oracle dimensions. The feedback dimension is
// the scaled sentiment score, not a constant.
const (
	RewardAttendance  uint64 = 10
	RewardVote        uint64 = 5
	RewardFeedback    uint64 = 5
	RewardCertificate uint64 = 25

	ScoreAttendance    uint64 = 10
	ScoreVote          uint64 = 10
	ScoreCertification uint64 = 20
)
