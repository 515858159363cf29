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

type ListHandler struct {
	listRepo repository.ListRepositoryInterface
	guard    *authz.Guard
}

func NewListHandler(listRepo repository.ListRepositoryInterface, guard *authz.Guard) *ListHandler {
	return &ListHandler{listRepo: listRepo, guard: guard}
}

type CreateListRequest struct {
	Name string `json:"name"`
}

type UpdateListRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

type ListResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Board     string `json:"board"`
	Order     int    `json:"order"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newListResponse(list *model.List) ListResponse {
	return ListResponse{
		ID:        list.ID.String(),
		Name:      list.Name,
		Board:     list.BoardID.String(),
		Order:     list.Position,
		CreatedAt: list.CreatedAt.Format(time.RFC3339),
		UpdatedAt: list.UpdatedAt.Format(time.RFC3339),
	}
}

// Create appends a list to the board. Its order is the current sibling count,
// so sequential creates number lists 0..N-1.
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, _, err := h.guard.AuthorizeBoard(c.Request.Context(), boardID, userID); err != nil {
		respondGuardError(c, err, "Board not found", "Access denied to this board")
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List name is required"})
		return
	}

	count, err := h.listRepo.CountByBoard(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine list order"})
		return
	}

	list := &model.List{
		BoardID:  boardID,
		Name:     name,
		Position: int(count),
	}

	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"list": newListResponse(list)})
}

// Update applies a partial update. Any owner or member of the parent board may
// rename or reorder; sibling positions are never shifted.
func (h *ListHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	list, _, err := h.guard.AuthorizeList(c.Request.Context(), listID, userID)
	if err != nil {
		respondGuardError(c, err, "List not found", "Access denied")
		return
	}

	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "List name cannot be empty"})
			return
		}
		list.Name = name
	}

	if req.Order != nil {
		list.Position = *req.Order
	}

	if err := h.listRepo.Update(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": newListResponse(list)})
}

// Delete removes the list and cascades to its tasks. Any owner or member of
// the parent board may delete.
func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	if _, _, err := h.guard.AuthorizeList(c.Request.Context(), listID, userID); err != nil {
		respondGuardError(c, err, "List not found", "Access denied")
		return
	}

	if err := h.listRepo.Delete(c.Request.Context(), listID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
