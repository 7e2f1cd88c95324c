package rating

import "math"

const (
	defaultKFactor       = 32.0
	defaultInitialRating = 1500.0
	ratingScale          = 400.0
)

// Config holds system parameters
type Config struct {
	KFactor       float64 `json:"k_factor"`
	InitialRating float64 `json:"initial_rating"`
}

// DefaultConfig returns recommended default parameters
func DefaultConfig() *Config {
	return &Config{
		KFactor:       defaultKFactor,
		InitialRating: defaultInitialRating,
	}
}

// Elo implements the standard Elo rating system
type Elo struct {
	Config *Config
}

// New creates an Elo rating system with configuration
func New(config *Config) *Elo {
	if config == nil {
		config = DefaultConfig()
	}
	if config.KFactor <= 0 {
		config.KFactor = defaultKFactor
	}
	if config.InitialRating <= 0 {
		config.InitialRating = defaultInitialRating
	}
	return &Elo{Config: config}
}

// InitialRating is the seed value for a player with no rating history.
func (e *Elo) InitialRating() float64 {
	return e.Config.InitialRating
}

// ExpectedScore returns the probability that a player at rating `player`
// beats one at rating `opponent`. ExpectedScore(a, b) + ExpectedScore(b, a)
// is always 1.
func (e *Elo) ExpectedScore(player, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponent-player)/ratingScale))
}

// UpdateMatch computes both players' post-match ratings. Whoever is passed
// as winner is scored 1 regardless of prior rating; inputs are not range
// checked, so long losing streaks can push a rating negative.
func (e *Elo) UpdateMatch(winnerRating, loserRating float64) (newWinnerRating, newLoserRating float64) {
	expectedWinner := e.ExpectedScore(winnerRating, loserRating)
	expectedLoser := e.ExpectedScore(loserRating, winnerRating)

	newWinnerRating = winnerRating + e.Config.KFactor*(1-expectedWinner)
	newLoserRating = loserRating + e.Config.KFactor*(0-expectedLoser)
	return newWinnerRating, newLoserRating
}
