package service

import (
	"errors"
	"testing"

	"github.com/czarstudio/studio-api/internal/core/domain"
)

func TestAuthorize_ExactRoleOnly(t *testing.T) {
	cases := []struct {
		role domain.Role
		want bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleUser, false},
		{domain.RoleViewer, false},
		{"", false},
		{"Admin", false},
		{"superadmin", false},
	}
	for _, tc := range cases {
		got := Authorize(&domain.Identity{UserID: "u1", Role: tc.role}, domain.RoleAdmin)
		if got != tc.want {
			t.Fatalf("Authorize(role=%q, admin) = %v, want %v", tc.role, got, tc.want)
		}
	}

	if Authorize(nil, domain.RoleAdmin) {
		t.Fatalf("nil identity must not be authorized")
	}
	if Authorize(&domain.Identity{UserID: "u1", Role: domain.RoleAdmin}, domain.RoleViewer) {
		t.Fatalf("admin must not inherit viewer privileges")
	}
}

func TestAuthorizeUserDeletion(t *testing.T) {
	admin := &domain.Identity{UserID: "a1", Role: domain.RoleAdmin}

	if err := AuthorizeUserDeletion(admin, "u2"); err != nil {
		t.Fatalf("admin deleting another user: %v", err)
	}

	err := AuthorizeUserDeletion(admin, "a1")
	if !errors.Is(err, domain.ErrSelfDeletion) || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected self deletion to be forbidden, got %v", err)
	}

	viewer := &domain.Identity{UserID: "v1", Role: domain.RoleViewer}
	if err := AuthorizeUserDeletion(viewer, "v1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin self delete, got %v", err)
	}
	if err := AuthorizeUserDeletion(viewer, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}

	if err := AuthorizeUserDeletion(nil, "u2"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
