package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"productivity/dto"
	"productivity/model"
	"productivity/usecase"
	"productivity/utils"

	"github.com/gin-gonic/gin"
)

type TasksHandler struct {
	service *usecase.TasksService
	log     *slog.Logger
}

func NewTasksHandler(service *usecase.TasksService, log *slog.Logger) *TasksHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TasksHandler{service: service, log: log}
}

// Register mounts the task routes on rg.
func (h *TasksHandler) Register(rg *gin.RouterGroup) {
	capture := rg.Group("/capture")
	{
		capture.POST("/parse", h.Parse)
		capture.POST("/quick", h.QuickAdd)
		capture.POST("/bulk", h.BulkAdd)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.POST("", h.Create)
		tasks.GET("/:id", h.Get)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.POST("/:id/advance", h.Advance)
		tasks.POST("/:id/board", h.ToggleBoard)
		tasks.GET("/:id/calendar.ics", h.Calendar)
	}

	views := rg.Group("/views")
	{
		views.GET("/today", h.Today)
		views.GET("/board", h.Board)
		views.GET("/recurring", h.RecurringWeek)
		views.GET("/summary", h.Summary)
	}

	rg.GET("/tags/suggestions", h.TagSuggestions)
	rg.GET("/notice", h.Notice)
}

func (h *TasksHandler) Parse(c *gin.Context) {
	var req dto.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	utils.Success(c, h.service.Preview(req.Text))
}

func (h *TasksHandler) QuickAdd(c *gin.Context) {
	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.service.QuickAdd(c.Request.Context(), req.Input())
	if err != nil {
		h.respondError(c, "quick add", err)
		return
	}
	utils.Created(c, "Task added", dto.ToTaskResponse(task, h.service.Now()))
}

func (h *TasksHandler) BulkAdd(c *gin.Context) {
	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tasks, err := h.service.BulkAdd(c.Request.Context(), req.Input())
	if err != nil {
		h.respondError(c, "bulk add", err)
		return
	}
	utils.Created(c, fmt.Sprintf("%d tasks added", len(tasks)), dto.ToTaskResponses(tasks, h.service.Now()))
}

func (h *TasksHandler) List(c *gin.Context) {
	var query dto.TaskQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	now := h.service.Now()
	filter, err := query.Filter(now)
	if err != nil {
		utils.BadRequest(c, "Invalid due filter: "+err.Error())
		return
	}

	tasks, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, "list tasks", err)
		return
	}
	utils.Success(c, dto.ToTaskResponses(tasks, now))
}

func (h *TasksHandler) Get(c *gin.Context) {
	task, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "get task", err)
		return
	}
	utils.Success(c, dto.ToTaskResponse(task, h.service.Now()))
}

func (h *TasksHandler) Create(c *gin.Context) {
	h.saveDraft(c, "")
}

func (h *TasksHandler) Update(c *gin.Context) {
	h.saveDraft(c, c.Param("id"))
}

func (h *TasksHandler) saveDraft(c *gin.Context, existingID string) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.service.SaveDraft(c.Request.Context(), req.Draft(), existingID)
	if err != nil {
		h.respondError(c, "save task", err)
		return
	}

	resp := dto.ToTaskResponse(task, h.service.Now())
	if existingID == "" {
		utils.Created(c, "Task created", resp)
		return
	}
	utils.Success(c, resp)
}

func (h *TasksHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete task", err)
		return
	}
	utils.Success(c, gin.H{"id": id})
}

func (h *TasksHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	change, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, "update status", err)
		return
	}
	utils.Success(c, dto.ToStatusChangeResponse(change, h.service.Now()))
}

func (h *TasksHandler) Advance(c *gin.Context) {
	change, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "advance task", err)
		return
	}
	utils.Success(c, dto.ToStatusChangeResponse(change, h.service.Now()))
}

func (h *TasksHandler) ToggleBoard(c *gin.Context) {
	task, err := h.service.ToggleBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "toggle board", err)
		return
	}
	utils.Success(c, dto.ToTaskResponse(task, h.service.Now()))
}

func (h *TasksHandler) Calendar(c *gin.Context) {
	id := c.Param("id")
	ics, err := h.service.CalendarICS(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "export calendar", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="task-%s.ics"`, id))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

func (h *TasksHandler) Today(c *gin.Context) {
	sections, err := h.service.Today(c.Request.Context())
	if err != nil {
		h.respondError(c, "today view", err)
		return
	}
	now := h.service.Now()
	utils.Success(c, gin.H{
		"overdue": dto.ToTaskResponses(sections.Overdue, now),
		"today":   dto.ToTaskResponses(sections.Today, now),
	})
}

func (h *TasksHandler) Board(c *gin.Context) {
	board, err := h.service.Board(c.Request.Context())
	if err != nil {
		h.respondError(c, "board view", err)
		return
	}
	utils.Success(c, board)
}

func (h *TasksHandler) RecurringWeek(c *gin.Context) {
	columns, err := h.service.RecurringWeek(c.Request.Context())
	if err != nil {
		h.respondError(c, "recurring view", err)
		return
	}
	utils.Success(c, columns)
}

func (h *TasksHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, "summary view", err)
		return
	}
	utils.Success(c, summary)
}

// TagSuggestions lists known tags not yet in ?assigned=a,b.
func (h *TasksHandler) TagSuggestions(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, "tag suggestions", err)
		return
	}
	assigned := usecase.ParseManualTags(c.Query("assigned"))
	utils.Success(c, usecase.TagSuggestions(summary.Tags, assigned))
}

func (h *TasksHandler) Notice(c *gin.Context) {
	notice, err := h.service.Notice(c.Request.Context())
	if err != nil {
		h.respondError(c, "current notice", err)
		return
	}
	utils.Success(c, notice)
}

func (h *TasksHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case usecase.IsValidationError(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrDueDateRequired), errors.Is(err, model.ErrTaskInvalid):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrTaskNotFound):
		utils.NotFound(c, "Task not found")
	case errors.Is(err, model.ErrTaskAlreadyExists):
		c.JSON(http.StatusConflict, &utils.Response{Status: http.StatusConflict, Error: "Task already exists"})
	default:
		h.log.Error("request failed", "op", op, "error", err)
		utils.TrackError("handler", op)
		utils.InternalError(c, "Failed to "+op)
	}
}
