package service

import "github.com/todoapp/todoapp/database/model"

// RequireIdentity fails when no identity was resolved for the request.
func RequireIdentity(identity *model.Identity) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireRole fails with ErrUnauthenticated without an identity and with
// ErrForbidden when the identity holds a different role.
func RequireRole(identity *model.Identity, role model.Role) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if identity.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireOwnership reports ErrNotFound for a todo owned by someone else so
// that callers cannot probe for other users' records.
func RequireOwnership(identity *model.Identity, todo *model.Todo) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if todo == nil || todo.OwnerId != identity.Id {
		return ErrNotFound
	}
	return nil
}
