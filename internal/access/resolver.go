package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/settings"
)

// Resolver answers whether a user may access a board. It is the single
// authorization point shared by the REST services and the realtime gateway,
// so both surfaces always agree on who can see what.
type Resolver interface {
	// CanAccess returns true when the user owns the board, is a member of it,
	// or the board is public while public boards are globally enabled.
	// A nonexistent board resolves to (false, nil): deny, don't error.
	CanAccess(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
}

type resolverImpl struct {
	boardRepo repository.BoardRepository
	settings  settings.Service
}

// NewResolver creates a new access Resolver
func NewResolver(boardRepo repository.BoardRepository, settingsService settings.Service) Resolver {
	return &resolverImpl{
		boardRepo: boardRepo,
		settings:  settingsService,
	}
}

// CanAccess returns true when the user owns the board, is a member of it,
// or the board is public while public boards are globally enabled.
func (r *resolverImpl) CanAccess(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	board, err := r.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if board.OwnerID == userID {
		return true, nil
	}

	_, err = r.boardRepo.FindMember(ctx, boardID, userID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if !board.IsPrivate && r.settings.PublicBoardsEnabled(ctx) {
		return true, nil
	}

	return false, nil
}
