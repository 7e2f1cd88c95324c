package services

import (
	"context"
	"sort"
	"time"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RankingEntry is one leaderboard row
type RankingEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	IntraName   string    `json:"intraName"`
	UserImage   string    `json:"userImage,omitempty"`
	Rating      float64   `json:"rating"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// GetCategoryRanking builds the leaderboard for a category: one entry per
// user, best rate first. Rating rows whose user no longer exists are
// skipped rather than failing the whole request.
func GetCategoryRanking(ctx context.Context, categoryID string) ([]RankingEntry, error) {
	categoryOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, db.ErrInvalidID
	}

	ratings, err := db.GetCategoryRatings(ctx, categoryOID)
	if err != nil {
		return nil, err
	}

	top := topRatingsPerUser(ratings)

	return buildRanking(top, func(userID primitive.ObjectID) (*models.User, error) {
		return db.GetUser(ctx, userID)
	})
}

// topRatingsPerUser keeps the row with the maximum rate for each user and
// returns the survivors sorted by rate descending. It does not rely on
// the feed being pre-sorted.
func topRatingsPerUser(ratings []models.Rating) []models.Rating {
	best := make(map[primitive.ObjectID]models.Rating)
	var order []primitive.ObjectID

	for _, r := range ratings {
		kept, seen := best[r.UserID]
		if !seen {
			best[r.UserID] = r
			order = append(order, r.UserID)
			continue
		}
		if r.Rate > kept.Rate {
			best[r.UserID] = r
		}
	}

	top := make([]models.Rating, 0, len(order))
	for _, userID := range order {
		top = append(top, best[userID])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Rate > top[j].Rate
	})
	return top
}

// buildRanking joins users onto the deduplicated rows and assigns
// sequential ranks. Ties get consecutive ranks, not equal ones.
func buildRanking(top []models.Rating, lookupUser func(primitive.ObjectID) (*models.User, error)) ([]RankingEntry, error) {
	entries := make([]RankingEntry, 0, len(top))
	rank := 1

	for _, r := range top {
		user, err := lookupUser(r.UserID)
		if err != nil {
			if db.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		entries = append(entries, RankingEntry{
			Rank:        rank,
			UserID:      r.UserID.Hex(),
			Name:        user.Name,
			IntraName:   user.IntraName,
			UserImage:   user.UserImage,
			Rating:      r.Rate,
			LastUpdated: r.Date,
		})
		rank++
	}

	return entries, nil
}
