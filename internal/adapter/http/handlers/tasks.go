package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/adapter/http/mapper"
	"taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/adapter/http/validation"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), user.ID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, err := bindTaskBody(c, &req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(user.ID, req, raw)
	if err != nil {
		renderTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		renderTaskError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindTaskBody(c, &req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		renderTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), user.ID, taskID, input)
	if err != nil {
		renderTaskError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), user.ID, taskID); err != nil {
		renderTaskError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, apierrors.CreateMessage(apierrors.MsgTaskDeleted, lang))
}

// bindTaskBody binds the body into req and also returns it as a raw map so callers can tell
// an absent field from an explicit null.
func bindTaskBody(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}
	return raw, nil
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return 0, false
	}
	return taskID, true
}

func requireUser(c *gin.Context) (domain.User, bool) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingIdentity, middleware.GetLang(c)),
		)
		return domain.User{}, false
	}
	return user, true
}
