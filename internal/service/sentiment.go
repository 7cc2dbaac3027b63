package service

import (
	"strings"
	"unicode"

	"github.com/campuschain/ccms/internal/domain"
)

// SentimentService scores free text against a small valence lexicon. Pure
// and deterministic: same input, same output, no external calls.
type SentimentService struct {
	lexicon map[string]int
}

func NewSentimentService() *SentimentService {
	return &SentimentService{lexicon: defaultLexicon}
}

// Analyze tokenizes text and sums word valences. A negator directly before a
// scored word flips its sign.
func (s *SentimentService) Analyze(text string) (domain.Sentiment, float64) {
	tokens := tokenize(text)

	score := 0
	for i, token := range tokens {
		valence, ok := s.lexicon[token]
		if !ok {
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			valence = -valence
		}
		score += valence
	}

	switch {
	case score > 0:
		return domain.SentimentPositive, float64(score)
	case score < 0:
		return domain.SentimentNegative, float64(score)
	default:
		return domain.SentimentNeutral, 0
	}
}

// Scale maps a raw score onto 0-100 for the reputation oracle's feedback
// dimension. 50 is neutral.
func (s *SentimentService) Scale(score float64) uint64 {
	return Scale(score)
}

func Scale(score float64) uint64 {
	scaled := 50 + score*5
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 100 {
		scaled = 100
	}
	return uint64(scaled)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "nothing": true, "cannot": true, "cant": true,
	"wont": true, "dont": true, "didnt": true, "wasnt": true, "isnt": true,
}

// defaultLexicon is an AFINN-style valence table trimmed to vocabulary that
// shows up in event feedback.
var defaultLexicon = map[string]int{
	"amazing": 4, "awesome": 4, "excellent": 3, "fantastic": 4,
	"outstanding": 5, "brilliant": 4, "great": 3, "good": 3, "nice": 3,
	"enjoyable": 2, "enjoyed": 2, "love": 3, "loved": 3, "like": 2,
	"liked": 2, "helpful": 2, "useful": 2, "informative": 2, "engaging": 2,
	"interesting": 2, "fun": 4, "wonderful": 4, "perfect": 5, "best": 3,
	"insightful": 2, "clear": 1, "organized": 2, "smooth": 2, "recommend": 2,
	"inspiring": 3, "valuable": 2, "thanks": 2, "thank": 2, "impressive": 3,

	"bad": -3, "terrible": -3, "awful": -3, "horrible": -3, "worst": -3,
	"boring": -3, "poor": -2, "disappointing": -2, "disappointed": -2,
	"hate": -3, "hated": -3, "dislike": -2, "disliked": -2, "useless": -2,
	"confusing": -2, "confused": -2, "waste": -1, "wasted": -2, "slow": -2,
	"late": -1, "disorganized": -2, "chaotic": -2, "rude": -2, "broken": -1,
	"crowded": -1, "noisy": -1, "unclear": -2, "mediocre": -1, "problem": -2,
	"problems": -2, "issue": -2, "issues": -2, "failed": -2, "failure": -2,
}
