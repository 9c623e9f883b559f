package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("TODO_ADMIN_USERNAME", "")
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = database.CloseDB() })
	return database.GetDB()
}

func addUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.Identity {
	t.Helper()
	user, err := NewUserService(db).Register(&UserDraft{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
	}, role)
	require.NoError(t, err)
	return &model.Identity{Id: user.Id, Username: user.Username, Role: user.Role}
}

func boolPtr(b bool) *bool { return &b }

func draft(title, description string, priority int, complete bool) *TodoDraft {
	return &TodoDraft{Title: title, Description: description, Priority: priority, Complete: boolPtr(complete)}
}
