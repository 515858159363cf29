package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskflow/internal/authz"
	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type taskTestEnv struct {
	router    *gin.Engine
	boardRepo *MockBoardRepository
	listRepo  *MockListRepository
	taskRepo  *MockTaskRepository
}

func setupTaskTest(userID uuid.UUID) taskTestEnv {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	boardRepo := new(MockBoardRepository)
	listRepo := new(MockListRepository)
	taskRepo := new(MockTaskRepository)
	guard := authz.NewGuard(boardRepo, listRepo, taskRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, guard)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})

	r.POST("/api/lists/:id/tasks", taskHandler.Create)
	r.PATCH("/api/tasks/:id", taskHandler.Update)
	r.DELETE("/api/tasks/:id", taskHandler.Delete)

	return taskTestEnv{router: r, boardRepo: boardRepo, listRepo: listRepo, taskRepo: taskRepo}
}

// taskFixture wires a board/list/task chain owned by ownerID into the mocks.
func taskFixture(env taskTestEnv, ownerID uuid.UUID, members ...uuid.UUID) *model.Task {
	board := boardOwnedBy(ownerID, members...)
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	task := &model.Task{
		ID:       uuid.New(),
		ListID:   list.ID,
		Title:    "Write report",
		Priority: model.PriorityMedium,
		Status:   model.StatusTodo,
	}

	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	return task
}

func TestCreateTask_Defaults(t *testing.T) {
	// Arrange: omitted status/priority/order fall back to todo/medium/count
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	board := boardOwnedBy(ownerID)
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	env.taskRepo.On("CountByList", mock.Anything, list.ID).Return(int64(2), nil)
	env.taskRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Write report" &&
			task.Status == model.StatusTodo &&
			task.Priority == model.PriorityMedium &&
			task.Position == 2 &&
			task.AssignedTo == nil &&
			task.DueDate == nil
	})).Return(nil)

	body := []byte(`{"title": "Write report"}`)
	req, _ := http.NewRequest("POST", "/api/lists/"+list.ID.String()+"/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response struct {
		Task handler.TaskResponse `json:"task"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "todo", response.Task.Status)
	assert.Equal(t, "medium", response.Task.Priority)
	assert.Equal(t, 2, response.Task.Order)
	assert.Nil(t, response.Task.AssignedTo)

	env.taskRepo.AssertExpectations(t)
}

func TestCreateTask_WithAssigneeAndDueDate(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	board := boardOwnedBy(ownerID)
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	env.taskRepo.On("CountByList", mock.Anything, list.ID).Return(int64(0), nil)

	assignee := uuid.New()
	dueDate := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	env.taskRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Priority == model.PriorityHigh &&
			task.AssignedTo != nil && *task.AssignedTo == assignee &&
			task.DueDate != nil && task.DueDate.Equal(dueDate)
	})).Return(nil)

	reqBody := handler.CreateTaskRequest{
		Title:      "Review PR",
		AssignedTo: &assignee,
		DueDate:    &dueDate,
		Priority:   "high",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/lists/"+list.ID.String()+"/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	env.taskRepo.AssertExpectations(t)
}

func TestCreateTask_InvalidPriority(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	board := boardOwnedBy(ownerID)
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	body := []byte(`{"title": "Write report", "priority": "urgent"}`)
	req, _ := http.NewRequest("POST", "/api/lists/"+list.ID.String()+"/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid priority value")
	env.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	board := boardOwnedBy(ownerID)
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	body := []byte(`{"title": "  "}`)
	req, _ := http.NewRequest("POST", "/api/lists/"+list.ID.String()+"/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task title is required")
	env.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_Stranger(t *testing.T) {
	// Arrange
	env := setupTaskTest(uuid.New())

	board := boardOwnedBy(uuid.New())
	list := &model.List{ID: uuid.New(), BoardID: board.ID, Name: "Todo"}
	env.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	env.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	body := []byte(`{"title": "Write report"}`)
	req, _ := http.NewRequest("POST", "/api/lists/"+list.ID.String()+"/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	env.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	// Arrange: only status changes, everything else keeps its value
	memberID := uuid.New()
	env := setupTaskTest(memberID)

	task := taskFixture(env, uuid.New(), memberID)
	env.taskRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *model.Task) bool {
		return updated.Status == model.StatusInProgress &&
			updated.Title == "Write report" &&
			updated.Priority == model.PriorityMedium
	})).Return(nil)

	body := []byte(`{"status": "in-progress"}`)
	req, _ := http.NewRequest("PATCH", "/api/tasks/"+task.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Task handler.TaskResponse `json:"task"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "in-progress", response.Task.Status)
	assert.Equal(t, "Write report", response.Task.Title)

	env.taskRepo.AssertExpectations(t)
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	task := taskFixture(env, ownerID)

	body := []byte(`{"status": "finished"}`)
	req, _ := http.NewRequest("PATCH", "/api/tasks/"+task.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid status value")
	env.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTask_ExplicitNullClearsAssignee(t *testing.T) {
	// Arrange: "assignedTo": null unassigns, omitting the field would not
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	task := taskFixture(env, ownerID)
	assignee := uuid.New()
	task.AssignedTo = &assignee
	dueDate := time.Now().Add(24 * time.Hour)
	task.DueDate = &dueDate

	env.taskRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *model.Task) bool {
		return updated.AssignedTo == nil && updated.DueDate != nil
	})).Return(nil)

	body := []byte(`{"assignedTo": null}`)
	req, _ := http.NewRequest("PATCH", "/api/tasks/"+task.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Task handler.TaskResponse `json:"task"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Nil(t, response.Task.AssignedTo)
	assert.NotNil(t, response.Task.DueDate)

	env.taskRepo.AssertExpectations(t)
}

func TestUpdateTask_Reassign(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	env := setupTaskTest(ownerID)

	task := taskFixture(env, ownerID)
	newAssignee := uuid.New()

	env.taskRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *model.Task) bool {
		return updated.AssignedTo != nil && *updated.AssignedTo == newAssignee
	})).Return(nil)

	body := []byte(`{"assignedTo": "` + newAssignee.String() + `"}`)
	req, _ := http.NewRequest("PATCH", "/api/tasks/"+task.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	env.taskRepo.AssertExpectations(t)
}

func TestUpdateTask_NotFound(t *testing.T) {
	// Arrange
	env := setupTaskTest(uuid.New())

	taskID := uuid.New()
	env.taskRepo.On("GetByID", mock.Anything, taskID).Return(nil, nil)

	body := []byte(`{"title": "New title"}`)
	req, _ := http.NewRequest("PATCH", "/api/tasks/"+taskID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task not found")
}

func TestDeleteTask_Stranger(t *testing.T) {
	// Arrange
	env := setupTaskTest(uuid.New())

	task := taskFixture(env, uuid.New())

	req, _ := http.NewRequest("DELETE", "/api/tasks/"+task.ID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	env.taskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTask_Member(t *testing.T) {
	// Arrange
	memberID := uuid.New()
	env := setupTaskTest(memberID)

	task := taskFixture(env, uuid.New(), memberID)
	env.taskRepo.On("Delete", mock.Anything, task.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/tasks/"+task.ID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task deleted successfully")
	env.taskRepo.AssertExpectations(t)
}
