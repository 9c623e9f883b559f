package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/util/crypto"
)

// UserDraft is the payload for creating an account.
type UserDraft struct {
	Username    string `json:"username" form:"username" validate:"required,min=3"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	Password    string `json:"password" form:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

type passwordChange struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UserService manages accounts in the auth store.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates an active account with role.
func (s *UserService) Register(draft *UserDraft, role model.Role) (*model.User, error) {
	if err := validateStruct(draft); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, newValidationError("role", "should be one of user, admin")
	}

	var count int64
	err := s.db.Model(&model.User{}).
		Where("username = ? OR email = ?", draft.Username, draft.Email).
		Count(&count).
		Error
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hash, err := crypto.HashPassword(draft.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     draft.Username,
		Email:        draft.Email,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		PhoneNumber:  draft.PhoneNumber,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Get returns the account behind identity.
func (s *UserService) Get(identity *model.Identity) (*model.User, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}
	user := &model.User{}
	err := s.db.First(user, identity.Id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *UserService) ChangePassword(identity *model.Identity, current, next string) error {
	user, err := s.Get(identity)
	if err != nil {
		return err
	}
	if err := validateStruct(&passwordChange{NewPassword: next}); err != nil {
		return err
	}
	if err := crypto.CheckPassword(user.PasswordHash, current); err != nil {
		return ErrBadCredentials
	}
	hash, err := crypto.HashPassword(next)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password_hash", hash).Error
}

// UpdatePhoneNumber sets the caller's phone number.
func (s *UserService) UpdatePhoneNumber(identity *model.Identity, phone string) error {
	user, err := s.Get(identity)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("phone_number", phone).Error
}

// List returns all accounts ordered by id.
func (s *UserService) List() ([]model.User, error) {
	users := make([]model.User, 0)
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole changes the role of the named account.
func (s *UserService) SetRole(username string, role model.Role) error {
	if !role.Valid() {
		return newValidationError("role", "should be one of user, admin")
	}
	res := s.db.Model(&model.User{}).Where("username = ?", username).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetActive enables or disables login for the named account.
func (s *UserService) SetActive(username string, active bool) error {
	res := s.db.Model(&model.User{}).Where("username = ?", username).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
