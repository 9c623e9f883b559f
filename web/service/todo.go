package service

import (
	"fmt"

	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"

	"gorm.io/gorm"
)

// TodoService implements owner-scoped CRUD over todos. It works on the store
// handle it was built with, normally the per-request session.
type TodoService struct {
	db *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// ListMine returns every todo owned by identity.
func (s *TodoService) ListMine(identity *model.Identity) ([]model.Todo, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}
	todos := make([]model.Todo, 0)
	if err := s.db.Where("owner_id = ?", identity.Id).Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetOne returns the todo with id if identity owns it.
func (s *TodoService) GetOne(identity *model.Identity, id int) (*model.Todo, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.findOwned(identity, id)
}

// Create stores a new todo owned by identity.
func (s *TodoService) Create(identity *model.Identity, draft *TodoDraft) (*model.Todo, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	todo := &model.Todo{OwnerId: identity.Id}
	draft.apply(todo)
	if err := s.db.Create(todo).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// Update overwrites the mutable fields of an owned todo.
func (s *TodoService) Update(identity *model.Identity, id int, draft *TodoDraft) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	todo, err := s.findOwned(identity, id)
	if err != nil {
		return err
	}
	draft.apply(todo)
	err = s.db.Model(todo).
		Select("Title", "Description", "Priority", "Complete").
		Updates(todo).
		Error
	if err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	return nil
}

// Delete removes an owned todo.
func (s *TodoService) Delete(identity *model.Identity, id int) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	todo, err := s.findOwned(identity, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&model.Todo{}, todo.Id).Error; err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func (s *TodoService) findOwned(identity *model.Identity, id int) (*model.Todo, error) {
	todo := &model.Todo{}
	err := s.db.Where("id = ?", id).First(todo).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("load todo %d: %w", id, err)
	}
	if err := RequireOwnership(identity, todo); err != nil {
		return nil, err
	}
	return todo, nil
}
