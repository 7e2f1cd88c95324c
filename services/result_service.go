package services

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/KanayaActa/IceBreaker/config"
	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"
	"github.com/KanayaActa/IceBreaker/rating"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	eloSystem     *rating.Elo
	allowSelfPlay bool

	// Striped mutexes keyed by (user, category) pair. The fixed stripe
	// count bounds memory: unrelated pairs may share a stripe and
	// serialize together, which is harmless, but two results for the
	// same pair can never both update from the same stale rating.
	// In-process only; concurrent instances would still need
	// storage-level control.
	pairLocks [64]sync.Mutex
)

// InitResultService configures the Elo system from config
func InitResultService(cfg *config.Config) {
	eloCfg := rating.DefaultConfig()
	if cfg != nil && cfg.Match.KFactor > 0 {
		eloCfg.KFactor = cfg.Match.KFactor
	}
	eloSystem = rating.New(eloCfg)
	if cfg != nil {
		allowSelfPlay = cfg.Match.AllowSelfPlay
	}
}

// GetEloSystem returns the configured Elo system
func GetEloSystem() *rating.Elo {
	if eloSystem == nil {
		eloSystem = rating.New(nil)
	}
	return eloSystem
}

// PlayerResult reports one player's rating movement
type PlayerResult struct {
	ID        string  `json:"id"`
	OldRating float64 `json:"oldRating"`
	NewRating float64 `json:"newRating"`
}

// ResultSummary is the response for a recorded match result
type ResultSummary struct {
	Message string       `json:"message"`
	MatchID string       `json:"matchId"`
	Winner  PlayerResult `json:"winner"`
	Loser   PlayerResult `json:"loser"`
}

// resultStore is the storage surface RecordResult needs. Lookups and
// writes are function fields so tests can exercise the recording flow
// without a live database, same as the ranking builder's user lookup.
type resultStore struct {
	getUser          func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getCategory      func(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	getCurrentRating func(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Rating, error)
	createMatch      func(ctx context.Context, match models.Match) (*models.Match, error)
	createRating     func(ctx context.Context, r models.Rating) (*models.Rating, error)
}

func mongoResultStore() resultStore {
	return resultStore{
		getUser:          db.GetUser,
		getCategory:      db.GetCategory,
		getCurrentRating: db.GetCurrentRating,
		createMatch:      db.CreateMatch,
		createRating:     db.CreateRating,
	}
}

// RecordResult records a match and updates both players' ratings.
//
// All validation and existence checks run before any write. The match
// insert is not transactional with the rating appends: if a rating write
// fails the match stays recorded and the error is returned to the caller.
func RecordResult(ctx context.Context, winnerID, loserID, categoryID string, winnerPoint, loserPoint int, date time.Time) (*ResultSummary, error) {
	return recordResult(ctx, mongoResultStore(), winnerID, loserID, categoryID, winnerPoint, loserPoint, date)
}

func recordResult(ctx context.Context, store resultStore, winnerID, loserID, categoryID string, winnerPoint, loserPoint int, date time.Time) (*ResultSummary, error) {
	winnerOID, err := primitive.ObjectIDFromHex(winnerID)
	if err != nil {
		return nil, db.ErrInvalidID
	}
	loserOID, err := primitive.ObjectIDFromHex(loserID)
	if err != nil {
		return nil, db.ErrInvalidID
	}
	categoryOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, db.ErrInvalidID
	}

	if !allowSelfPlay && winnerOID == loserOID {
		return nil, &db.ValidationError{Field: "loserId", Reason: "winner and loser must be different users"}
	}

	if _, err := store.getUser(ctx, winnerOID); err != nil {
		if db.IsNotFound(err) {
			return nil, &db.NotFoundError{Entity: "Winner", ID: winnerID}
		}
		return nil, err
	}
	if _, err := store.getUser(ctx, loserOID); err != nil {
		if db.IsNotFound(err) {
			return nil, &db.NotFoundError{Entity: "Loser", ID: loserID}
		}
		return nil, err
	}
	if _, err := store.getCategory(ctx, categoryOID); err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now().UTC()
	}

	unlock := lockStripes(pairStripe(winnerOID, categoryOID), pairStripe(loserOID, categoryOID))
	defer unlock()

	match, err := store.createMatch(ctx, models.Match{
		WinnerID:    winnerOID,
		LoserID:     loserOID,
		CategoryID:  categoryOID,
		WinnerPoint: winnerPoint,
		LoserPoint:  loserPoint,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	elo := GetEloSystem()

	winnerCurrent, err := currentRate(ctx, store, winnerOID, categoryOID, elo)
	if err != nil {
		return nil, err
	}
	loserCurrent, err := currentRate(ctx, store, loserOID, categoryOID, elo)
	if err != nil {
		return nil, err
	}

	newWinnerRate, newLoserRate := elo.UpdateMatch(winnerCurrent, loserCurrent)

	// Append-only: every result adds a new history record per player.
	if _, err := store.createRating(ctx, models.Rating{
		UserID:     winnerOID,
		CategoryID: categoryOID,
		Rate:       newWinnerRate,
		Date:       date,
	}); err != nil {
		return nil, err
	}
	if _, err := store.createRating(ctx, models.Rating{
		UserID:     loserOID,
		CategoryID: categoryOID,
		Rate:       newLoserRate,
		Date:       date,
	}); err != nil {
		return nil, err
	}

	return &ResultSummary{
		Message: "Match result recorded and ratings updated",
		MatchID: match.ID.Hex(),
		Winner: PlayerResult{
			ID:        winnerID,
			OldRating: winnerCurrent,
			NewRating: newWinnerRate,
		},
		Loser: PlayerResult{
			ID:        loserID,
			OldRating: loserCurrent,
			NewRating: newLoserRate,
		},
	}, nil
}

// currentRate returns the pair's latest rate, or the seed value when the
// pair has no history yet.
func currentRate(ctx context.Context, store resultStore, userID, categoryID primitive.ObjectID, elo *rating.Elo) (float64, error) {
	current, err := store.getCurrentRating(ctx, userID, categoryID)
	if err != nil {
		if db.IsNotFound(err) {
			return elo.InitialRating(), nil
		}
		return 0, err
	}
	return current.Rate, nil
}

func pairStripe(userID, categoryID primitive.ObjectID) int {
	h := fnv.New32a()
	h.Write([]byte(userID.Hex()))
	h.Write([]byte(":"))
	h.Write([]byte(categoryID.Hex()))
	return int(h.Sum32() % uint32(len(pairLocks)))
}

// lockStripes acquires the given stripes in sorted order so that two
// results touching the same pairs cannot deadlock.
func lockStripes(stripes ...int) func() {
	sort.Ints(stripes)

	var locked []*sync.Mutex
	prev := -1
	for _, s := range stripes {
		if s == prev {
			continue
		}
		prev = s
		pairLocks[s].Lock()
		locked = append(locked, &pairLocks[s])
	}

	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}
