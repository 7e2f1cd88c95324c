package services

import (
	"testing"
	"time"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ratingRow(userID primitive.ObjectID, rate float64) models.Rating {
	return models.Rating{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Rate:   rate,
		Date:   time.Now(),
	}
}

func TestTopRatingsPerUserDeduplicates(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	// Alice has three history rows; only her maximum should survive
	rows := []models.Rating{
		ratingRow(alice, 1550),
		ratingRow(bob, 1520),
		ratingRow(alice, 1500),
		ratingRow(alice, 1484),
	}

	top := topRatingsPerUser(rows)
	if len(top) != 2 {
		t.Fatalf("Expected 2 deduplicated rows, got %d", len(top))
	}
	if top[0].UserID != alice || top[0].Rate != 1550 {
		t.Errorf("Expected Alice first with 1550, got %v at %v", top[0].UserID, top[0].Rate)
	}
	if top[1].UserID != bob || top[1].Rate != 1520 {
		t.Errorf("Expected Bob second with 1520, got %v at %v", top[1].UserID, top[1].Rate)
	}
}

func TestTopRatingsPerUserUnsortedFeed(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	// Max per user must win even when the feed is not rate-descending
	rows := []models.Rating{
		ratingRow(alice, 1400),
		ratingRow(bob, 1700),
		ratingRow(alice, 1800),
	}

	top := topRatingsPerUser(rows)
	if len(top) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(top))
	}
	if top[0].UserID != alice || top[0].Rate != 1800 {
		t.Errorf("Expected Alice first with 1800, got rate %v", top[0].Rate)
	}
}

func TestBuildRankingAssignsSequentialRanks(t *testing.T) {
	users := map[primitive.ObjectID]*models.User{}
	var rows []models.Rating
	for _, rate := range []float64{1800, 1600, 1400} {
		id := primitive.NewObjectID()
		users[id] = &models.User{ID: id, Name: "player", IntraName: "intra"}
		rows = append(rows, ratingRow(id, rate))
	}

	entries, err := buildRanking(rows, func(id primitive.ObjectID) (*models.User, error) {
		return users[id], nil
	})
	if err != nil {
		t.Fatalf("buildRanking failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Errorf("Expected rank %d at position %d, got %d", i+1, i, entry.Rank)
		}
	}
	if entries[0].Rating != 1800 || entries[2].Rating != 1400 {
		t.Errorf("Expected ratings in descending order, got %v / %v", entries[0].Rating, entries[2].Rating)
	}
}

func TestBuildRankingTiesGetConsecutiveRanks(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	rows := []models.Rating{ratingRow(a, 1500), ratingRow(b, 1500)}

	entries, err := buildRanking(rows, func(id primitive.ObjectID) (*models.User, error) {
		return &models.User{ID: id}, nil
	})
	if err != nil {
		t.Fatalf("buildRanking failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("Tied rates should still get ranks 1 and 2, got %+v", entries)
	}
}

func TestBuildRankingSkipsMissingUsers(t *testing.T) {
	known := primitive.NewObjectID()
	gone := primitive.NewObjectID()
	rows := []models.Rating{ratingRow(gone, 1900), ratingRow(known, 1500)}

	entries, err := buildRanking(rows, func(id primitive.ObjectID) (*models.User, error) {
		if id == gone {
			return nil, &db.NotFoundError{Entity: "User", ID: id.Hex()}
		}
		return &models.User{ID: id, Name: "still here"}, nil
	})
	if err != nil {
		t.Fatalf("buildRanking failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected the missing user's row to be skipped, got %d entries", len(entries))
	}
	if entries[0].Rank != 1 || entries[0].Rating != 1500 {
		t.Errorf("Surviving entry should take rank 1, got %+v", entries[0])
	}
}
