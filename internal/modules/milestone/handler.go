package milestone

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bizdesk/internal/pkg/response"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	milestones := rg.Group("/milestones")
	{
		milestones.GET("", h.List)
		milestones.GET("/:id", h.Get)
		milestones.POST("", h.Create)
		milestones.PUT("/:id", h.Update)
		milestones.DELETE("/:id", admin, h.Delete)

		milestones.GET("/:id/employees", h.ListAssignees)
		milestones.POST("/:id/employees", h.AssignEmployee)
		milestones.DELETE("/:id/employees/:employeeId", h.UnassignEmployee)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	filters := map[string]any{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if projectID, err := strconv.ParseInt(c.Query("projectId"), 10, 64); err == nil {
		filters["project_id"] = projectID
	}

	result, err := h.service.List(c.Request.Context(), repository.ListParams{
		Page:      page,
		PageSize:  repository.ResolvePageSize(c.Query("pageSize")),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Filters:   filters,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list milestones")
		return
	}
	response.Paginated(c, http.StatusOK, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch milestone")
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced project does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create milestone")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update milestone")
		}
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete milestone")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Milestone deleted"})
}

func (h *Handler) ListAssignees(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	assignees, err := h.service.ListAssignees(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list milestone assignees")
		return
	}
	response.Success(c, http.StatusOK, assignees)
}

func (h *Handler) AssignEmployee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.AssignEmployee(c.Request.Context(), id, req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone not found")
		case errors.Is(err, ErrAlreadyAssigned):
			response.Error(c, http.StatusConflict, "CONFLICT", "Employee already assigned to this milestone")
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced employee does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign employee")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) UnassignEmployee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID")
		return
	}

	if err := h.service.UnassignEmployee(c.Request.Context(), id, employeeID); err != nil {
		if errors.Is(err, ErrAssigneeNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Milestone assignee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unassign employee")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Employee unassigned"})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid milestone ID")
		return 0, false
	}
	return id, true
}
