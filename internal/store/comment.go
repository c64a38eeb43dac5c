package store

import (
	"errors"
	"strings"

	"github.com/taskline-dev/taskline/internal/audit"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

type CreateCommentParams struct {
	IssueID  uint
	AuthorID *uint
	Text     string
}

// CreateComment inserts the comment and advances the owning issue's
// updated_date in the same transaction.
func (s *Store) CreateComment(params CreateCommentParams) (*models.Comment, error) {
	if strings.TrimSpace(params.Text) == "" {
		return nil, &models.ValidationError{Field: "comment_text", Reason: "must not be empty"}
	}

	comment := models.Comment{
		IssueID:  params.IssueID,
		AuthorID: params.AuthorID,
		Text:     params.Text,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireIssue(tx, comment.IssueID); err != nil {
			return err
		}
		if comment.AuthorID != nil {
			if err := requireUser(tx, *comment.AuthorID); err != nil {
				return err
			}
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return audit.TouchIssue(tx, comment.IssueID)
	})
	if err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func requireIssue(tx *gorm.DB, id uint) error {
	var issue models.Issue

	if err := locked(tx).First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *Store) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment

	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func (s *Store) ListCommentsByIssue(issueID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("issue_id = ?", issueID).
		Order("created_at").Offset(skip).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}

	return comments, nil
}

// UpdateCommentText replaces the comment body. The owning issue's
// updated_date moves only when the text actually changes; the propagation
// is text-content-sensitive.
func (s *Store) UpdateCommentText(id uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "comment_text", Reason: "must not be empty"}
	}

	var comment models.Comment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&comment, id).Error; err != nil {
			return err
		}

		if comment.Text == text {
			return nil
		}

		if err := tx.Model(&comment).Update("comment_text", text).Error; err != nil {
			return err
		}
		comment.Text = text

		return audit.TouchIssue(tx, comment.IssueID)
	})
	if err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func (s *Store) DeleteComment(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment

		if err := locked(tx).First(&comment, id).Error; err != nil {
			return err
		}

		return tx.Delete(&comment).Error
	})

	return translate(err)
}
