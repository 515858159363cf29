package repository

import (
	"context"
	"errors"

	"taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	ReplaceMembers(ctx context.Context, boardID uuid.UUID, memberIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetByID loads a board with its membership set, or nil when it does not exist.
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetForUser returns boards the user owns or is a member of, most recently
// updated first.
func (r *BoardRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("LEFT JOIN board_members bm ON bm.board_id = boards.id AND bm.user_id = ?", userID).
		Where("boards.owner_id = ? OR bm.user_id IS NOT NULL", userID).
		Order("boards.updated_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit("Members").Save(board).Error
}

// ReplaceMembers swaps the board's entire membership set. Member IDs are taken
// as-is without checking that they refer to existing users.
func (r *BoardRepository) ReplaceMembers(ctx context.Context, boardID uuid.UUID, memberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&model.BoardMember{}).Error; err != nil {
			return err
		}

		if len(memberIDs) == 0 {
			return nil
		}

		members := make([]model.BoardMember, len(memberIDs))
		for i, userID := range memberIDs {
			members[i] = model.BoardMember{BoardID: boardID, UserID: userID}
		}
		return tx.Create(&members).Error
	})
}

// Delete removes the board together with all descendant lists and tasks in a
// single transaction.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM tasks WHERE list_id IN (SELECT id FROM lists WHERE board_id = ?)", id,
		).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&model.List{}).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&model.BoardMember{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.Board{}).Error
	})
}
