package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

type userService struct {
	repo     ports.UserRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewUserService returns the staff account management use cases.
func NewUserService(repo ports.UserRepository, activity ports.ActivityRecorder, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, activity: activity, log: log}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, actor domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, domain.ValidationError("email, password and name are required")
	}

	role := domain.RoleUser
	if in.Role != "" {
		role = domain.Role(in.Role)
	}
	if !role.Valid() {
		return nil, domain.ValidationError("role must be one of: admin user viewer")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  domain.NormalizePermissions(in.Permissions),
		Active:       active,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    actor.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit(actor, "user.created", created.ID, string(created.Role))
	s.log.Info().Str("actor", actor.UserID).Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies a partial update. Empty strings leave the field unchanged,
// matching the admin form which always posts every field.
func (s *userService) Update(ctx context.Context, actor domain.Identity, in ports.UpdateUserInput) (*domain.User, error) {
	if in.ID == "" {
		return nil, domain.ValidationError("user id required")
	}

	var upd ports.UserUpdate
	if in.Email != nil {
		if email := domain.NormalizeEmail(*in.Email); email != "" {
			upd.Email = &email
		}
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			upd.Name = &name
		}
	}
	if in.Role != nil && *in.Role != "" {
		role := domain.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.ValidationError("role must be one of: admin user viewer")
		}
		upd.Role = &role
	}
	if in.Permissions != nil {
		perms := domain.NormalizePermissions(*in.Permissions)
		upd.Permissions = &perms
	}
	upd.Active = in.Active
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	if upd.Email != nil {
		existing, err := s.repo.FindByEmail(ctx, *upd.Email)
		switch {
		case err == nil && existing.ID != in.ID:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, in.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit(actor, "user.updated", updated.ID, "")
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if id == "" {
		return domain.ValidationError("user id required")
	}
	if err := AuthorizeUserDeletion(&actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit(actor, "user.deleted", id, "")
	s.log.Info().Str("actor", actor.UserID).Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) audit(actor domain.Identity, action, id, detail string) {
	s.activity.Enqueue(ports.ActivityInput{
		ActorID:    actor.UserID,
		Action:     action,
		Resource:   "user",
		ResourceID: id,
		Detail:     detail,
		At:         time.Now().UTC(),
	})
}
