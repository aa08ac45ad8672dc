package communication

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
	logs := rg.Group("/communications")
	{
		logs.GET("", h.List)
		logs.GET("/:id", h.Get)
		logs.POST("", h.Create)
		logs.PUT("/:id", h.Update)
		logs.DELETE("/:id", admin, h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	filters := map[string]any{}
	if clientID, err := strconv.ParseInt(c.Query("clientId"), 10, 64); err == nil {
		filters["client_id"] = clientID
	}
	if projectID, err := strconv.ParseInt(c.Query("projectId"), 10, 64); err == nil {
		filters["project_id"] = projectID
	}
	if mode := c.Query("mode"); mode != "" {
		filters["mode"] = mode
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
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list communication logs")
		return
	}
	response.Paginated(c, http.StatusOK, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	log, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Communication log not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch communication log")
		return
	}
	response.Success(c, http.StatusOK, log)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	log, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced client or project does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create communication log")
		}
		return
	}
	response.Success(c, http.StatusCreated, log)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	log, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		var ve *validator.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Communication log not found")
		case errors.Is(err, ErrBadReference):
			response.Error(c, http.StatusConflict, "CONFLICT", "Referenced client or project does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update communication log")
		}
		return
	}
	response.Success(c, http.StatusOK, log)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Communication log not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete communication log")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Communication log deleted"})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid communication log ID")
		return 0, false
	}
	return id, true
}
