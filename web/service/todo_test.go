package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todoapp/database/model"
)

func TestListMineIsOwnerScoped(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	bob := addUser(t, db, "bob", model.RoleUser)
	svc := NewTodoService(db)

	created, err := svc.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)
	assert.Equal(t, alice.Id, created.OwnerId)
	assert.Positive(t, created.Id)

	mine, err := svc.ListMine(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.Id, mine[0].Id)

	theirs, err := svc.ListMine(bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestOwnershipHidesExistence(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	bob := addUser(t, db, "bob", model.RoleUser)
	svc := NewTodoService(db)

	todo, err := svc.Create(bob, draft("Walk dog", "around the park", 3, false))
	require.NoError(t, err)

	_, err = svc.GetOne(alice, todo.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Update(alice, todo.Id, draft("Stolen", "not mine", 1, true)), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(alice, todo.Id), ErrNotFound)

	_, err = svc.GetOne(alice, todo.Id+1000)
	assert.ErrorIs(t, err, ErrNotFound)

	still, err := svc.GetOne(bob, todo.Id)
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", still.Title)
}

func TestOperationsRequireIdentity(t *testing.T) {
	db := setup(t)
	svc := NewTodoService(db)

	_, err := svc.ListMine(nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.GetOne(nil, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Create(nil, draft("Buy milk", "2% milk", 2, false))
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, svc.Update(nil, 1, draft("Buy milk", "2% milk", 2, false)), ErrUnauthenticated)
	assert.ErrorIs(t, svc.Delete(nil, 1), ErrUnauthenticated)
}

func TestCreateValidation(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	svc := NewTodoService(db)

	tests := []struct {
		name    string
		draft   *TodoDraft
		wantErr bool
		field   string
	}{
		{"description 100 chars", draft("Title", strings.Repeat("d", 100), 3, false), false, ""},
		{"description 101 chars", draft("Title", strings.Repeat("d", 101), 3, false), true, "description"},
		{"description 2 chars", draft("Title", "dd", 3, false), true, "description"},
		{"description 3 chars", draft("Title", "ddd", 3, false), false, ""},
		{"priority 0", draft("Title", "desc", 0, false), true, "priority"},
		{"priority 6", draft("Title", "desc", 6, false), true, "priority"},
		{"priority 1", draft("Title", "desc", 1, false), false, ""},
		{"priority 5", draft("Title", "desc", 5, true), false, ""},
		{"title 2 chars", draft("Ti", "desc", 3, false), true, "title"},
		{"title 3 multibyte chars", draft("äöü", "desc", 3, false), false, ""},
		{"complete missing", &TodoDraft{Title: "Title", Description: "desc", Priority: 3}, true, "complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(alice, tt.draft)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestUpdateOverwritesMutableFields(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	svc := NewTodoService(db)

	todo, err := svc.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)

	require.NoError(t, svc.Update(alice, todo.Id, draft("Buy oat milk", "barista edition", 5, true)))

	got, err := svc.GetOne(alice, todo.Id)
	require.NoError(t, err)
	assert.Equal(t, todo.Id, got.Id)
	assert.Equal(t, alice.Id, got.OwnerId)
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, "barista edition", got.Description)
	assert.Equal(t, 5, got.Priority)
	assert.True(t, got.Complete)

	require.NoError(t, svc.Update(alice, todo.Id, draft("Buy oat milk", "barista edition", 5, false)))
	got, err = svc.GetOne(alice, todo.Id)
	require.NoError(t, err)
	assert.False(t, got.Complete)
}

func TestUpdateRejectsInvalidDraft(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	svc := NewTodoService(db)

	todo, err := svc.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, svc.Update(alice, todo.Id, draft("Buy milk", "2% milk", 9, false)), &verr)

	got, err := svc.GetOne(alice, todo.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Priority)
}

func TestDelete(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	svc := NewTodoService(db)

	todo, err := svc.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(alice, todo.Id))

	_, err = svc.GetOne(alice, todo.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(alice, todo.Id), ErrNotFound)
}

func TestNonPositiveIDIsValidationError(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	svc := NewTodoService(db)

	var verr *ValidationError
	_, err := svc.GetOne(alice, 0)
	assert.ErrorAs(t, err, &verr)
	assert.ErrorAs(t, svc.Delete(alice, -3), &verr)
}
