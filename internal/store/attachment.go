package store

import (
	"errors"
	"strings"

	"github.com/taskline-dev/taskline/internal/audit"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

type CreateAttachmentParams struct {
	IssueID    uint
	UploaderID *uint
	FileName   string
	FilePath   string
	FileType   string
	FileSize   int64
}

// CreateAttachment records the metadata of an uploaded file (the blob
// itself lives outside this layer) and advances the issue's updated_date
// in the same transaction.
func (s *Store) CreateAttachment(params CreateAttachmentParams) (*models.Attachment, error) {
	params.FileName = strings.TrimSpace(params.FileName)
	params.FilePath = strings.TrimSpace(params.FilePath)

	if params.FileName == "" {
		return nil, &models.ValidationError{Field: "file_name", Reason: "must not be empty"}
	}
	if params.FilePath == "" {
		return nil, &models.ValidationError{Field: "file_path", Reason: "must not be empty"}
	}
	if params.FileSize < 0 {
		return nil, &models.ValidationError{Field: "file_size_bytes", Reason: "must not be negative"}
	}

	attachment := models.Attachment{
		IssueID:    params.IssueID,
		UploaderID: params.UploaderID,
		FileName:   params.FileName,
		FilePath:   params.FilePath,
		FileType:   params.FileType,
		FileSize:   params.FileSize,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireIssue(tx, attachment.IssueID); err != nil {
			return err
		}
		if attachment.UploaderID != nil {
			if err := requireUser(tx, *attachment.UploaderID); err != nil {
				return err
			}
		}

		var existing models.Attachment
		err := tx.Where("file_path = ?", attachment.FilePath).First(&existing).Error
		if err == nil {
			return &models.UniquenessError{Field: "file_path", Value: attachment.FilePath}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&attachment).Error; err != nil {
			return err
		}
		return audit.TouchIssue(tx, attachment.IssueID)
	})
	if err != nil {
		return nil, translate(err)
	}

	return &attachment, nil
}

func (s *Store) GetAttachment(id uint) (*models.Attachment, error) {
	var attachment models.Attachment

	if err := s.db.First(&attachment, id).Error; err != nil {
		return nil, translate(err)
	}

	return &attachment, nil
}

func (s *Store) ListAttachmentsByIssue(issueID uint, skip, limit int) ([]models.Attachment, error) {
	var attachments []models.Attachment

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("issue_id = ?", issueID).
		Order("id").Offset(skip).Limit(limit).
		Find(&attachments).Error
	if err != nil {
		return nil, translate(err)
	}

	return attachments, nil
}

func (s *Store) DeleteAttachment(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var attachment models.Attachment

		if err := locked(tx).First(&attachment, id).Error; err != nil {
			return err
		}

		return tx.Delete(&attachment).Error
	})

	return translate(err)
}
