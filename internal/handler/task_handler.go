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

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
	guard    *authz.Guard
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, guard *authz.Guard) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, guard: guard}
}

type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AssignedTo  *uuid.UUID  `json:"assignedTo"`
	DueDate     *time.Time  `json:"dueDate"`
	Priority    string      `json:"priority"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	AssignedTo  Optional[uuid.UUID]  `json:"assignedTo"`
	DueDate     Optional[time.Time]  `json:"dueDate"`
	Priority    *string              `json:"priority"`
	Status      *string              `json:"status"`
	Order       *int                 `json:"order"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	List        string  `json:"list"`
	AssignedTo  *string `json:"assignedTo"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Order       int     `json:"order"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func newTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		List:        task.ListID.String(),
		Priority:    task.Priority,
		Status:      task.Status,
		Order:       task.Position,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.AssignedTo != nil {
		assignedTo := task.AssignedTo.String()
		response.AssignedTo = &assignedTo
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(time.RFC3339)
		response.DueDate = &dueDate
	}

	return response
}

// Create appends a task to the list. Status starts at "todo", priority
// defaults to "medium", and order is the current sibling count.
func (h *TaskHandler) Create(c *gin.Context) {
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

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task title is required"})
		return
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		if !model.ValidPriority(req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority value"})
			return
		}
		priority = req.Priority
	}

	count, err := h.taskRepo.CountByList(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine task order"})
		return
	}

	task := &model.Task{
		ListID:      listID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      model.StatusTodo,
		Position:    int(count),
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": newTaskResponse(task)})
}

// Update applies a partial update. Priority and status are validated against
// their closed enums; assignedTo and dueDate accept an explicit null to clear.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, _, err := h.guard.AuthorizeTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondGuardError(c, err, "Task not found", "Access denied")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Task title cannot be empty"})
			return
		}
		task.Title = title
	}

	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}

	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority value"})
			return
		}
		task.Priority = *req.Priority
	}

	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		task.Status = *req.Status
	}

	if req.AssignedTo.Set {
		if req.AssignedTo.Valid {
			assignedTo := req.AssignedTo.Value
			task.AssignedTo = &assignedTo
		} else {
			task.AssignedTo = nil
		}
	}

	if req.DueDate.Set {
		if req.DueDate.Valid {
			dueDate := req.DueDate.Value
			task.DueDate = &dueDate
		} else {
			task.DueDate = nil
		}
	}

	if req.Order != nil {
		task.Position = *req.Order
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": newTaskResponse(task)})
}

// Delete removes the task. Any owner or member of the parent board may delete.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, _, err := h.guard.AuthorizeTask(c.Request.Context(), taskID, userID); err != nil {
		respondGuardError(c, err, "Task not found", "Access denied")
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
