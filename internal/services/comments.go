package services

import (
	"errors"
	"fmt"
	"strings"

	"threadbox/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// CommentService owns the comment tree: CRUD plus the paginated
// top-level listing with reply subtrees attached.
type CommentService struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// cleanText strips markup and surrounding whitespace. Comments are
// plain text; anything that renders is someone probing.
func (s *CommentService) cleanText(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

// Create inserts a new comment. parentID may be nil for a top-level
// comment; if set, the parent must exist.
func (s *CommentService) Create(text string, parentID *uint, authorID uint) (*models.Comment, error) {
	text = s.cleanText(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if parentID != nil {
		var count int64
		if err := s.db.Model(&models.Comment{}).Where("id = ?", *parentID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("comments: failed to check parent: %w", err)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
	}

	comment := models.Comment{
		UserID:   authorID,
		ParentID: parentID,
		Text:     text,
		Replies:  []*models.Comment{},
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("comments: failed to insert comment: %w", err)
	}

	return &comment, nil
}

// Edit updates a comment's text. Only the author may edit.
func (s *CommentService) Edit(id uint, text string, requesterID uint) (*models.Comment, error) {
	text = s.cleanText(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("comments: failed to load comment: %w", err)
	}
	if comment.UserID != requesterID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(&comment).Update("text", text).Error; err != nil {
		return nil, fmt.Errorf("comments: failed to update comment: %w", err)
	}
	comment.Replies = []*models.Comment{}

	return &comment, nil
}

// Delete removes a comment together with its whole reply subtree and
// every reaction on those comments. Only the author may delete.
func (s *CommentService) Delete(id uint, requesterID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("comments: failed to load comment: %w", err)
	}
	if comment.UserID != requesterID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ids, err := collectSubtreeIDs(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.Reaction{}).Error; err != nil {
			return fmt.Errorf("comments: failed to delete reactions: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("comments: failed to delete subtree: %w", err)
		}
		return nil
	})
}

// ListPage returns one page of top-level comments, newest first, each
// with its full reply tree attached, plus the total number of top-level
// comments. limit and offset are assumed normalized by the caller.
func (s *CommentService) ListPage(limit, offset int) ([]*models.Comment, int64, error) {
	var total int64
	if err := s.db.Model(&models.Comment{}).Where("parent_id IS NULL").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("comments: failed to count top-level comments: %w", err)
	}

	var roots []*models.Comment
	if err := s.db.Where("parent_id IS NULL").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&roots).Error; err != nil {
		return nil, 0, fmt.Errorf("comments: failed to list comments: %w", err)
	}

	if err := s.attachReplies(roots); err != nil {
		return nil, 0, err
	}

	return roots, total, nil
}

// attachReplies fills Replies for every node under roots. The tree is
// walked breadth-first with one batched lookup per depth level, so a
// chain of depth N costs N queries rather than one per node.
func (s *CommentService) attachReplies(roots []*models.Comment) error {
	byID := make(map[uint]*models.Comment, len(roots))
	frontier := make([]uint, 0, len(roots))
	for _, c := range roots {
		c.Replies = []*models.Comment{}
		byID[c.ID] = c
		frontier = append(frontier, c.ID)
	}

	for len(frontier) > 0 {
		var children []*models.Comment
		if err := s.db.Where("parent_id IN ?", frontier).
			Order("created_at ASC, id ASC").
			Find(&children).Error; err != nil {
			return fmt.Errorf("comments: failed to load replies: %w", err)
		}

		frontier = frontier[:0]
		for _, child := range children {
			child.Replies = []*models.Comment{}
			parent := byID[*child.ParentID]
			parent.Replies = append(parent.Replies, child)
			byID[child.ID] = child
			frontier = append(frontier, child.ID)
		}
	}

	return nil
}

// collectSubtreeIDs gathers the ids of a comment and all its
// descendants, level by level.
func collectSubtreeIDs(tx *gorm.DB, root uint) ([]uint, error) {
	ids := []uint{root}
	frontier := []uint{root}

	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&models.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, fmt.Errorf("comments: failed to collect subtree: %w", err)
		}
		ids = append(ids, children...)
		frontier = children
	}

	return ids, nil
}
