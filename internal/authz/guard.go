package authz

import (
	"context"
	"errors"

	"taskflow/internal/model"

	"github.com/google/uuid"
)

// Role is the caller's relation to a board.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

var (
	// ErrNotFound is returned when the resource or its parent board does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the caller is neither owner nor member
	// of the resolved board.
	ErrForbidden = errors.New("access denied")
)

type BoardResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
}

type ListResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.List, error)
}

type TaskResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

// Guard is the single owner/member check for every board-scoped operation.
// List- and task-scoped requests resolve their parent board through the
// resource's back-reference before the same check runs.
type Guard struct {
	boards BoardResolver
	lists  ListResolver
	tasks  TaskResolver
}

func NewGuard(boards BoardResolver, lists ListResolver, tasks TaskResolver) *Guard {
	return &Guard{
		boards: boards,
		lists:  lists,
		tasks:  tasks,
	}
}

// AuthorizeBoard resolves the board and the caller's role on it.
func (g *Guard) AuthorizeBoard(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, Role, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, "", err
	}
	if board == nil {
		return nil, "", ErrNotFound
	}

	if board.OwnerID == userID {
		return board, RoleOwner, nil
	}
	if board.HasMember(userID) {
		return board, RoleMember, nil
	}

	return nil, "", ErrForbidden
}

// AuthorizeList resolves the list, then authorizes against its parent board.
func (g *Guard) AuthorizeList(ctx context.Context, listID, userID uuid.UUID) (*model.List, Role, error) {
	list, err := g.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, "", err
	}
	if list == nil {
		return nil, "", ErrNotFound
	}

	_, role, err := g.AuthorizeBoard(ctx, list.BoardID, userID)
	if err != nil {
		return nil, "", err
	}
	return list, role, nil
}

// AuthorizeTask resolves the task, then authorizes through its list's board.
func (g *Guard) AuthorizeTask(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, Role, error) {
	task, err := g.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if task == nil {
		return nil, "", ErrNotFound
	}

	list, err := g.lists.GetByID(ctx, task.ListID)
	if err != nil {
		return nil, "", err
	}
	if list == nil {
		return nil, "", ErrNotFound
	}

	_, role, err := g.AuthorizeBoard(ctx, list.BoardID, userID)
	if err != nil {
		return nil, "", err
	}
	return task, role, nil
}
