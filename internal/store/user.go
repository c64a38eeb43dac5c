package store

import (
	"errors"
	"strings"

	"github.com/taskline-dev/taskline/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserParams struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

func (s *Store) CreateUser(params CreateUserParams) (*models.User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	if params.Username == "" {
		return nil, &models.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if params.Email == "" {
		return nil, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if params.Password == "" {
		return nil, &models.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	if params.Role == "" {
		params.Role = models.RoleUser
	}
	if !params.Role.Valid() {
		return nil, &models.ValidationError{Field: "role", Reason: "unrecognized role " + string(params.Role)}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(passwordHash),
		Role:         params.Role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkUserUnique(tx, user.Username, user.Email, 0); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func checkUserUnique(tx *gorm.DB, username, email string, excludeID uint) error {
	var existing models.User

	err := tx.Where("username = ? AND id <> ?", username, excludeID).First(&existing).Error
	if err == nil {
		return &models.UniquenessError{Field: "username", Value: username}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = tx.Where("email = ? AND id <> ?", email, excludeID).First(&existing).Error
	if err == nil {
		return &models.UniquenessError{Field: "email", Value: email}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User

	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) ListUsers(skip, limit int) ([]models.User, error) {
	var users []models.User

	skip, limit = normalizeRange(skip, limit)

	if err := s.db.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, translate(err)
	}

	return users, nil
}

type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *models.Role
}

func (s *Store) UpdateUser(id uint, patch UserUpdate) (*models.User, error) {
	var user models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&user, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Username != nil {
			user.Username = strings.TrimSpace(*patch.Username)
			if user.Username == "" {
				return &models.ValidationError{Field: "username", Reason: "must not be empty"}
			}
			updates["username"] = user.Username
		}
		if patch.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
			if user.Email == "" {
				return &models.ValidationError{Field: "email", Reason: "must not be empty"}
			}
			updates["email"] = user.Email
		}
		if patch.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password_hash"] = string(hash)
		}
		if patch.Role != nil {
			if !patch.Role.Valid() {
				return &models.ValidationError{Field: "role", Reason: "unrecognized role " + string(*patch.Role)}
			}
			updates["role"] = *patch.Role
		}

		if len(updates) == 0 {
			return nil
		}

		if patch.Username != nil || patch.Email != nil {
			if err := checkUserUnique(tx, user.Username, user.Email, user.ID); err != nil {
				return err
			}
		}

		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// DeleteUser removes the user and clears every reference to it: project
// ownership, issue reporter/assignee, comment author, worklog logger, and
// attachment uploader. Dependents are never deleted.
func (s *Store) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := locked(tx).First(&user, id).Error; err != nil {
			return err
		}

		nullify := []struct {
			model  interface{}
			column string
		}{
			{&models.Project{}, "owner_id"},
			{&models.Issue{}, "reporter_id"},
			{&models.Issue{}, "assignee_id"},
			{&models.Comment{}, "author_id"},
			{&models.Worklog{}, "logger_id"},
			{&models.Attachment{}, "uploader_id"},
		}

		// UpdateColumn: clearing a dangling reference is not an edit of
		// the dependent entity, so its updated_at must not move.
		for _, ref := range nullify {
			err := tx.Model(ref.model).
				Where(ref.column+" = ?", id).
				UpdateColumn(ref.column, nil).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})

	return translate(err)
}
