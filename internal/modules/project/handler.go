package project

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
	projects := rg.Group("/projects")
	{
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)
		projects.POST("", h.Create)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", admin, h.Delete)

		projects.GET("/:id/members", h.ListMembers)
		projects.POST("/:id/members", h.AddMember)
		projects.DELETE("/:id/members/:employeeId", h.RemoveMember)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	filters := map[string]any{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		filters["priority"] = priority
	}
	if clientID, err := strconv.ParseInt(c.Query("clientId"), 10, 64); err == nil {
		filters["client_id"] = clientID
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
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list projects")
		return
	}
	response.Paginated(c, http.StatusOK, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch project")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced client does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project")
		}
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced client does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update project")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete project")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *Handler) ListMembers(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list project members")
		return
	}
	response.Success(c, http.StatusOK, members)
}

func (h *Handler) AddMember(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.AddMember(c.Request.Context(), id, req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
		case errors.Is(err, ErrAlreadyAssigned):
			response.Error(c, http.StatusConflict, "CONFLICT", "Employee already assigned to this project")
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced employee does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add project member")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	id, ok := h.paramID(c, "id", "Invalid project ID")
	if !ok {
		return
	}
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID")
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), id, employeeID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove project member")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Project member removed"})
}

func (h *Handler) paramID(c *gin.Context, name, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", invalidMsg)
		return 0, false
	}
	return id, true
}
