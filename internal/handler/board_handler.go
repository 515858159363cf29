package handler

import (
	"net/http"
	"strings"
	"time"

	"taskflow/internal/authz"
	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
	listRepo  repository.ListRepositoryInterface
	taskRepo  repository.TaskRepositoryInterface
	guard     *authz.Guard
}

func NewBoardHandler(
	boardRepo repository.BoardRepositoryInterface,
	listRepo repository.ListRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
	guard *authz.Guard,
) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		listRepo:  listRepo,
		taskRepo:  taskRepo,
		guard:     guard,
	}
}

type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Members     *[]string `json:"members"`
}

type BoardResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       string   `json:"owner"`
	Members     []string `json:"members"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ListWithTasksResponse is the nested shape returned by GetByID.
type ListWithTasksResponse struct {
	ListResponse
	Tasks []TaskResponse `json:"tasks"`
}

func newBoardResponse(board *model.Board) BoardResponse {
	members := make([]string, len(board.Members))
	for i, m := range board.Members {
		members[i] = m.UserID.String()
	}

	return BoardResponse{
		ID:          board.ID.String(),
		Name:        board.Name,
		Description: board.Description,
		Owner:       board.OwnerID.String(),
		Members:     members,
		CreatedAt:   board.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   board.UpdatedAt.Format(time.RFC3339),
	}
}

// Create creates a new board owned by the caller, with an empty membership set.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	board := &model.Board{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     userID,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"board": newBoardResponse(board)})
}

// GetAll returns every board the caller owns or is a member of.
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardRepo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, gin.H{"boards": response})
}

// GetByID returns the board together with its lists and their nested tasks.
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, _, err := h.guard.AuthorizeBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		respondGuardError(c, err, "Board not found", "Access denied to this board")
		return
	}

	lists, err := h.listRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lists"})
		return
	}

	response := make([]ListWithTasksResponse, len(lists))
	for i := range lists {
		tasks, err := h.taskRepo.GetByListID(c.Request.Context(), lists[i].ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}

		taskResponses := make([]TaskResponse, len(tasks))
		for j := range tasks {
			taskResponses[j] = newTaskResponse(&tasks[j])
		}

		response[i] = ListWithTasksResponse{
			ListResponse: newListResponse(&lists[i]),
			Tasks:        taskResponses,
		}
	}

	c.JSON(http.StatusOK, gin.H{"board": newBoardResponse(board), "lists": response})
}

// Update applies a partial update. Owner-only; members may be wholesale
// replaced with any provided set.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, role, err := h.guard.AuthorizeBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		respondGuardError(c, err, "Board not found", "Access denied to this board")
		return
	}

	if role != authz.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only owner can update board"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Board name cannot be empty"})
			return
		}
		board.Name = name
	}

	if req.Description != nil {
		board.Description = strings.TrimSpace(*req.Description)
	}

	var members []uuid.UUID
	if req.Members != nil {
		members = make([]uuid.UUID, 0, len(*req.Members))
		for _, raw := range *req.Members {
			memberID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
				return
			}
			members = append(members, memberID)
		}
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	if req.Members != nil {
		if err := h.boardRepo.ReplaceMembers(c.Request.Context(), board.ID, members); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board members"})
			return
		}

		board.Members = make([]model.BoardMember, len(members))
		for i, memberID := range members {
			board.Members[i] = model.BoardMember{BoardID: board.ID, UserID: memberID}
		}
	}

	c.JSON(http.StatusOK, gin.H{"board": newBoardResponse(board)})
}

// Delete removes the board and cascades to its lists and tasks. Owner-only.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	_, role, err := h.guard.AuthorizeBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		respondGuardError(c, err, "Board not found", "Access denied to this board")
		return
	}

	if role != authz.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only owner can delete board"})
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
