package usecase

import (
	"context"
	"log"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// UserStore is the slice of the user repository the profile/admin surface needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
	UpdateRole(ctx context.Context, userID, role string) error
	TouchActivity(ctx context.Context, userID, path string) error
}

// SessionRevoker is what the role-change path needs from the session layer.
type SessionRevoker interface {
	LogoutAll(ctx context.Context, userID string) error
}

type UserUsecase struct {
	users    UserStore
	sessions SessionRevoker
}

func NewUserUsecase(users UserStore, sessions SessionRevoker) *UserUsecase {
	return &UserUsecase{users: users, sessions: sessions}
}

func (uc *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func (uc *UserUsecase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.users.ListUsers(ctx, limit, offset)
}

// ChangeRole updates the account's role and revokes its sessions so the old
// role claim cannot outlive the change. An admin cannot demote themselves;
// that guard keeps the system from locking out its last admin by accident.
func (uc *UserUsecase) ChangeRole(ctx context.Context, actorID, userID, role string) error {
	if role != domain.RoleAdmin && role != domain.RoleStudent {
		return xerrors.ErrInvalidRequest
	}
	if actorID == userID && role != domain.RoleAdmin {
		return xerrors.ErrForbidden
	}

	if err := uc.users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	if err := uc.sessions.LogoutAll(ctx, userID); err != nil {
		log.Printf("[USER] role changed but session revocation failed user=%s: %v", userID, err)
	}
	return nil
}

// RecordVisit stamps last-seen and the activity trail. Advisory only.
func (uc *UserUsecase) RecordVisit(ctx context.Context, userID, path string) {
	if err := uc.users.TouchActivity(ctx, userID, path); err != nil {
		log.Printf("[USER] failed to record visit user=%s: %v", userID, err)
	}
}
