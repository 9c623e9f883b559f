package service

import (
	"fmt"

	"github.com/todoapp/todoapp/database/model"

	"gorm.io/gorm"
)

// AdminService gives the admin role unrestricted read and delete access.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListAll returns the todos of every owner.
func (s *AdminService) ListAll(identity *model.Identity) ([]model.Todo, error) {
	if err := RequireRole(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	todos := make([]model.Todo, 0)
	if err := s.db.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	return todos, nil
}

// DeleteAny removes the todo with id whoever owns it.
func (s *AdminService) DeleteAny(identity *model.Identity, id int) error {
	if err := RequireRole(identity, model.RoleAdmin); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	res := s.db.Delete(&model.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Export returns every todo ordered by owner then id. It performs no role
// check and is meant for the command line only.
func (s *AdminService) Export() ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	if err := s.db.Order("owner_id ASC, id ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("export todos: %w", err)
	}
	return todos, nil
}
