package services

import (
	"errors"
	"fmt"

	"threadbox/internal/models"

	"gorm.io/gorm"
)

// ReactionService enforces the per-(comment,user) like/dislike state
// machine. Each transition runs in a single transaction; the unique
// index on (comment_id, user_id) backstops concurrent first reactions.
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

// Counts is a comment's current reaction tally.
type Counts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// React moves the caller's reaction on a comment to status, adjusting
// the comment's counters in the same transaction:
//
//	neutral  -> like     likes+1
//	neutral  -> dislike  dislikes+1
//	dislike  -> like     likes+1, dislikes-1
//	like     -> dislike  dislikes+1, likes-1
//	same state again     ErrAlreadyReacted, counters untouched
func (s *ReactionService) React(commentID, userID uint, status string) (Counts, error) {
	if status != models.ReactionLike && status != models.ReactionDislike {
		return Counts{}, fmt.Errorf("reactions: unknown status %q", status)
	}

	var counts Counts
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("reactions: failed to load comment: %w", err)
		}

		var existing models.Reaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{
				CommentID: commentID,
				UserID:    userID,
				Status:    status,
			}
			if err := tx.Create(&reaction).Error; err != nil {
				// Unique index hit: another request from the same
				// user won the race.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrAlreadyReacted
				}
				return fmt.Errorf("reactions: failed to insert reaction: %w", err)
			}
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn(counterColumn(status), gorm.Expr(counterColumn(status)+" + ?", 1)).Error; err != nil {
				return fmt.Errorf("reactions: failed to update counter: %w", err)
			}

		case err != nil:
			return fmt.Errorf("reactions: failed to load reaction: %w", err)

		case existing.Status == status:
			return ErrAlreadyReacted

		default:
			// Flip. The status guard in the WHERE clause makes the
			// update a no-op if a concurrent request flipped first.
			res := tx.Model(&models.Reaction{}).
				Where("comment_id = ? AND user_id = ? AND status = ?", commentID, userID, existing.Status).
				Update("status", status)
			if res.Error != nil {
				return fmt.Errorf("reactions: failed to flip reaction: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrAlreadyReacted
			}
			if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumns(map[string]interface{}{
					counterColumn(status):          gorm.Expr(counterColumn(status) + " + 1"),
					counterColumn(existing.Status): gorm.Expr(counterColumn(existing.Status) + " - 1"),
				}).Error; err != nil {
				return fmt.Errorf("reactions: failed to update counters: %w", err)
			}
		}

		var updated models.Comment
		if err := tx.First(&updated, commentID).Error; err != nil {
			return fmt.Errorf("reactions: failed to reload comment: %w", err)
		}
		counts = Counts{Likes: updated.Likes, Dislikes: updated.Dislikes}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}

	return counts, nil
}

// Summary returns a comment's counters plus the caller's own reaction
// status, or nil when the caller is neutral.
func (s *ReactionService) Summary(commentID, userID uint) (Counts, *string, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Counts{}, nil, ErrNotFound
		}
		return Counts{}, nil, fmt.Errorf("reactions: failed to load comment: %w", err)
	}

	counts := Counts{Likes: comment.Likes, Dislikes: comment.Dislikes}

	var reaction models.Reaction
	err := s.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return counts, nil, nil
	}
	if err != nil {
		return Counts{}, nil, fmt.Errorf("reactions: failed to load reaction: %w", err)
	}

	return counts, &reaction.Status, nil
}

func counterColumn(status string) string {
	if status == models.ReactionLike {
		return "likes"
	}
	return "dislikes"
}
