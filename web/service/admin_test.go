package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todoapp/database/model"
)

func TestDeleteAny(t *testing.T) {
	db := setup(t)
	admin := addUser(t, db, "root", model.RoleAdmin)
	alice := addUser(t, db, "alice", model.RoleUser)
	bob := addUser(t, db, "bob", model.RoleUser)
	todos := NewTodoService(db)
	svc := NewAdminService(db)

	todo, err := todos.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAny(bob, todo.Id), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteAny(nil, todo.Id), ErrUnauthenticated)
	_, err = todos.GetOne(alice, todo.Id)
	require.NoError(t, err, "record must survive a rejected delete")

	require.NoError(t, svc.DeleteAny(admin, todo.Id))
	_, err = todos.GetOne(alice, todo.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteAny(admin, todo.Id), ErrNotFound)

	var verr *ValidationError
	assert.ErrorAs(t, svc.DeleteAny(admin, 0), &verr)
}

func TestBuyMilkScenario(t *testing.T) {
	db := setup(t)
	admin := addUser(t, db, "root", model.RoleAdmin)
	user1 := addUser(t, db, "user1", model.RoleUser)
	user2 := addUser(t, db, "user2", model.RoleUser)
	todos := NewTodoService(db)
	svc := NewAdminService(db)

	created, err := todos.Create(user1, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)

	mine, err := todos.ListMine(user1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Buy milk", mine[0].Title)

	_, err = svc.ListAll(user2)
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.ListAll(admin)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.Id, all[0].Id)
	assert.Equal(t, user1.Id, all[0].OwnerId)
}

func TestRequireRole(t *testing.T) {
	assert.ErrorIs(t, RequireRole(nil, model.RoleAdmin), ErrUnauthenticated)
	assert.ErrorIs(t, RequireRole(&model.Identity{Id: 1, Role: model.RoleUser}, model.RoleAdmin), ErrForbidden)
	assert.NoError(t, RequireRole(&model.Identity{Id: 1, Role: model.RoleAdmin}, model.RoleAdmin))
}

func TestRequireOwnership(t *testing.T) {
	owner := &model.Identity{Id: 7, Role: model.RoleUser}
	assert.NoError(t, RequireOwnership(owner, &model.Todo{Id: 1, OwnerId: 7}))
	assert.ErrorIs(t, RequireOwnership(owner, &model.Todo{Id: 1, OwnerId: 8}), ErrNotFound)
	assert.ErrorIs(t, RequireOwnership(&model.Identity{Id: 8, Role: model.RoleAdmin}, &model.Todo{Id: 1, OwnerId: 7}), ErrNotFound)
	assert.ErrorIs(t, RequireOwnership(nil, &model.Todo{Id: 1, OwnerId: 7}), ErrUnauthenticated)
}

func TestExportOrdersByOwner(t *testing.T) {
	db := setup(t)
	alice := addUser(t, db, "alice", model.RoleUser)
	bob := addUser(t, db, "bob", model.RoleUser)
	todos := NewTodoService(db)

	_, err := todos.Create(bob, draft("Walk dog", "around the park", 1, false))
	require.NoError(t, err)
	_, err = todos.Create(alice, draft("Buy milk", "2% milk", 2, false))
	require.NoError(t, err)

	all, err := NewAdminService(db).Export()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, alice.Id, all[0].OwnerId)
	assert.Equal(t, bob.Id, all[1].OwnerId)
}
