package service

import "github.com/czarstudio/studio-api/internal/core/domain"

// Authorize reports whether identity may run an operation restricted to the
// required role. Roles are flat: only an exact match passes.
func Authorize(identity *domain.Identity, required domain.Role) bool {
	if identity == nil || !identity.Role.Valid() {
		return false
	}
	return identity.Role == required
}

// AuthorizeUserDeletion applies the user-management rules to a delete of
// targetID. Deleting yourself is refused whatever your role.
func AuthorizeUserDeletion(identity *domain.Identity, targetID string) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if identity.UserID == targetID {
		return domain.ErrSelfDeletion
	}
	if !Authorize(identity, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}
