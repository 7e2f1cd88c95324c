package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recorderState captures what a recording run wrote.
type recorderState struct {
	matches []models.Match
	ratings []models.Rating
}

// fakeStore serves lookups from in-memory sets and appends writes to
// state, mirroring the injected lookup used by the ranking builder.
func fakeStore(users, categories map[primitive.ObjectID]bool, rates map[primitive.ObjectID]float64, state *recorderState) resultStore {
	return resultStore{
		getUser: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			if users[id] {
				return &models.User{ID: id}, nil
			}
			return nil, &db.NotFoundError{Entity: "User", ID: id.Hex()}
		},
		getCategory: func(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
			if categories[id] {
				return &models.Category{ID: id}, nil
			}
			return nil, &db.NotFoundError{Entity: "Category", ID: id.Hex()}
		},
		getCurrentRating: func(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Rating, error) {
			if rate, ok := rates[userID]; ok {
				return &models.Rating{UserID: userID, CategoryID: categoryID, Rate: rate}, nil
			}
			return nil, &db.NotFoundError{Entity: "Rating", ID: userID.Hex()}
		},
		createMatch: func(ctx context.Context, match models.Match) (*models.Match, error) {
			match.ID = primitive.NewObjectID()
			state.matches = append(state.matches, match)
			return &match, nil
		},
		createRating: func(ctx context.Context, r models.Rating) (*models.Rating, error) {
			state.ratings = append(state.ratings, r)
			return &r, nil
		},
	}
}

func TestRecordResultSeedsNewPlayers(t *testing.T) {
	eloSystem = nil
	allowSelfPlay = false

	winner := primitive.NewObjectID()
	loser := primitive.NewObjectID()
	category := primitive.NewObjectID()
	state := &recorderState{}
	store := fakeStore(
		map[primitive.ObjectID]bool{winner: true, loser: true},
		map[primitive.ObjectID]bool{category: true},
		map[primitive.ObjectID]float64{},
		state,
	)

	summary, err := recordResult(context.Background(), store, winner.Hex(), loser.Hex(), category.Hex(), 10, 5, time.Now())
	if err != nil {
		t.Fatalf("recordResult returned error: %v", err)
	}

	// Players without history start from the seed value.
	if summary.Winner.OldRating != 1500.0 {
		t.Errorf("Expected winner old rating 1500, got %v", summary.Winner.OldRating)
	}
	if summary.Loser.OldRating != 1500.0 {
		t.Errorf("Expected loser old rating 1500, got %v", summary.Loser.OldRating)
	}
	if summary.Winner.NewRating != 1516.0 {
		t.Errorf("Expected winner new rating 1516, got %v", summary.Winner.NewRating)
	}
	if summary.Loser.NewRating != 1484.0 {
		t.Errorf("Expected loser new rating 1484, got %v", summary.Loser.NewRating)
	}

	if len(state.matches) != 1 {
		t.Fatalf("Expected 1 match recorded, got %d", len(state.matches))
	}
	if summary.MatchID != state.matches[0].ID.Hex() {
		t.Errorf("Summary match ID %s does not match recorded match %s", summary.MatchID, state.matches[0].ID.Hex())
	}
	if len(state.ratings) != 2 {
		t.Fatalf("Expected 2 rating records appended, got %d", len(state.ratings))
	}
	if state.ratings[0].UserID != winner || state.ratings[0].Rate != 1516.0 {
		t.Errorf("Unexpected winner rating record: %+v", state.ratings[0])
	}
	if state.ratings[1].UserID != loser || state.ratings[1].Rate != 1484.0 {
		t.Errorf("Unexpected loser rating record: %+v", state.ratings[1])
	}
}

func TestRecordResultUsesLatestRates(t *testing.T) {
	eloSystem = nil
	allowSelfPlay = false

	winner := primitive.NewObjectID()
	loser := primitive.NewObjectID()
	category := primitive.NewObjectID()
	state := &recorderState{}
	store := fakeStore(
		map[primitive.ObjectID]bool{winner: true, loser: true},
		map[primitive.ObjectID]bool{category: true},
		map[primitive.ObjectID]float64{winner: 1400.0, loser: 1600.0},
		state,
	)

	summary, err := recordResult(context.Background(), store, winner.Hex(), loser.Hex(), category.Hex(), 3, 2, time.Now())
	if err != nil {
		t.Fatalf("recordResult returned error: %v", err)
	}

	if summary.Winner.OldRating != 1400.0 || summary.Loser.OldRating != 1600.0 {
		t.Errorf("Expected old ratings 1400/1600, got %v/%v", summary.Winner.OldRating, summary.Loser.OldRating)
	}
	if math.Abs(summary.Winner.NewRating-1424.3) > 0.1 {
		t.Errorf("Expected underdog winner near 1424.3, got %v", summary.Winner.NewRating)
	}
	if math.Abs(summary.Loser.NewRating-1575.7) > 0.1 {
		t.Errorf("Expected favorite loser near 1575.7, got %v", summary.Loser.NewRating)
	}
}

func TestRecordResultCategoryNotFoundBeforeWrite(t *testing.T) {
	eloSystem = nil
	allowSelfPlay = false

	winner := primitive.NewObjectID()
	loser := primitive.NewObjectID()
	state := &recorderState{}
	store := fakeStore(
		map[primitive.ObjectID]bool{winner: true, loser: true},
		map[primitive.ObjectID]bool{},
		map[primitive.ObjectID]float64{},
		state,
	)

	_, err := recordResult(context.Background(), store, winner.Hex(), loser.Hex(), primitive.NewObjectID().Hex(), 1, 0, time.Now())
	if !db.IsNotFound(err) {
		t.Fatalf("Expected not-found error for missing category, got %v", err)
	}
	if len(state.matches) != 0 || len(state.ratings) != 0 {
		t.Errorf("Expected no writes after failed category lookup, got %d matches and %d ratings", len(state.matches), len(state.ratings))
	}
}

func TestRecordResultWinnerNotFoundBeforeWrite(t *testing.T) {
	eloSystem = nil
	allowSelfPlay = false

	loser := primitive.NewObjectID()
	category := primitive.NewObjectID()
	state := &recorderState{}
	store := fakeStore(
		map[primitive.ObjectID]bool{loser: true},
		map[primitive.ObjectID]bool{category: true},
		map[primitive.ObjectID]float64{},
		state,
	)

	_, err := recordResult(context.Background(), store, primitive.NewObjectID().Hex(), loser.Hex(), category.Hex(), 1, 0, time.Now())
	var nf *db.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if nf.Entity != "Winner" {
		t.Errorf("Expected entity Winner, got %s", nf.Entity)
	}
	if len(state.matches) != 0 || len(state.ratings) != 0 {
		t.Errorf("Expected no writes after failed winner lookup, got %d matches and %d ratings", len(state.matches), len(state.ratings))
	}
}

func TestRecordResultRejectsSelfPlay(t *testing.T) {
	eloSystem = nil
	allowSelfPlay = false

	player := primitive.NewObjectID()
	category := primitive.NewObjectID()
	state := &recorderState{}
	store := fakeStore(
		map[primitive.ObjectID]bool{player: true},
		map[primitive.ObjectID]bool{category: true},
		map[primitive.ObjectID]float64{},
		state,
	)

	_, err := recordResult(context.Background(), store, player.Hex(), player.Hex(), category.Hex(), 1, 0, time.Now())
	var ve *db.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError for self-play, got %v", err)
	}
	if len(state.matches) != 0 || len(state.ratings) != 0 {
		t.Errorf("Expected no writes for rejected self-play, got %d matches and %d ratings", len(state.matches), len(state.ratings))
	}
}

func TestRecordResultInvalidID(t *testing.T) {
	state := &recorderState{}
	store := fakeStore(nil, nil, nil, state)

	_, err := recordResult(context.Background(), store, "not-hex", primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), 1, 0, time.Now())
	if !errors.Is(err, db.ErrInvalidID) {
		t.Fatalf("Expected ErrInvalidID, got %v", err)
	}
}

func TestLockStripesOppositeOrder(t *testing.T) {
	// Two goroutines locking the same two stripes in opposite order must
	// not deadlock thanks to sorted acquisition.
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			unlock := lockStripes(3, 17)
			unlock()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			unlock := lockStripes(17, 3)
			unlock()
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lockStripes deadlocked with opposite acquisition order")
	}
}

func TestLockStripesDuplicate(t *testing.T) {
	// Self-play and stripe collisions pass the same stripe twice; the
	// mutex must not be acquired twice.
	done := make(chan struct{})
	go func() {
		unlock := lockStripes(5, 5)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lockStripes self-deadlocked on a duplicate stripe")
	}
}

func TestLockStripesSerializes(t *testing.T) {
	unlock := lockStripes(9)

	acquired := make(chan struct{})
	go func() {
		second := lockStripes(9)
		second()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second locker acquired the stripe while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second locker never acquired the stripe after release")
	}
}

func TestPairStripeStable(t *testing.T) {
	user := primitive.NewObjectID()
	category := primitive.NewObjectID()

	s := pairStripe(user, category)
	if s != pairStripe(user, category) {
		t.Error("Same pair hashed to different stripes")
	}
	if s < 0 || s >= len(pairLocks) {
		t.Errorf("Stripe %d out of range", s)
	}
}

func TestGetEloSystemDefaults(t *testing.T) {
	eloSystem = nil
	elo := GetEloSystem()
	if elo.InitialRating() != 1500.0 {
		t.Errorf("Expected default seed 1500.0, got %v", elo.InitialRating())
	}
	if elo.Config.KFactor != 32.0 {
		t.Errorf("Expected default K-factor 32, got %v", elo.Config.KFactor)
	}
}
