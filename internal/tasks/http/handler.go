package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/httpx"
	"github.com/calendario-app/calendario-backend/internal/payload"
	"github.com/calendario-app/calendario-backend/internal/tasks/domain"
	"github.com/calendario-app/calendario-backend/internal/tasks/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Toggle)
	rg.DELETE("/:id", h.Delete)
}

type toggleBody struct {
	Completed payload.Flag `json:"completed"`
}

func (h *Handler) List(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.list", err)
		return
	}
	f, err := listFilter(c)
	if err != nil {
		httpx.Fail(c, "tasks.list", err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), owner, f)
	if err != nil {
		httpx.Fail(c, "tasks.list", err)
		return
	}
	httpx.OK(c, http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.get", err)
		return
	}
	t, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		httpx.Fail(c, "tasks.get", err)
		return
	}
	httpx.OK(c, http.StatusOK, t)
}

func (h *Handler) Create(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.create", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "tasks.create", err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		httpx.Fail(c, "tasks.create", err)
		return
	}
	httpx.Created(c, t)
}

func (h *Handler) Update(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.update", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "tasks.update", err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), owner, c.Param("id"), in)
	if err != nil {
		httpx.Fail(c, "tasks.update", err)
		return
	}
	httpx.OK(c, http.StatusOK, t)
}

// Toggle sets completed from the body, or flips it when the body has none.
func (h *Handler) Toggle(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.toggle", err)
		return
	}
	var body toggleBody
	// Chunked bodies report no length; an empty body decodes to io.EOF.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := httpx.BindJSON(c, &body); err != nil && !errors.Is(err, io.EOF) {
			httpx.Fail(c, "tasks.toggle", err)
			return
		}
	}

	var completed *bool
	if body.Completed.Set {
		completed = &body.Completed.Value
	}
	t, err := h.svc.SetCompleted(c.Request.Context(), owner, c.Param("id"), completed)
	if err != nil {
		httpx.Fail(c, "tasks.toggle", err)
		return
	}
	httpx.OK(c, http.StatusOK, t)
}

func (h *Handler) Delete(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "tasks.delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		httpx.Fail(c, "tasks.delete", err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{})
}

func listFilter(c *gin.Context) (domain.ListFilter, error) {
	var f domain.ListFilter

	if raw := strings.TrimSpace(c.Query("completed")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperr.Validation("Valor de completed inválido")
		}
		f.Completed = &v
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		p := domain.Priority(strings.ToLower(raw))
		if !p.Valid() {
			return f, apperr.Validation("La prioridad debe ser low, medium o high")
		}
		f.Priority = p
	}
	f.Category = strings.TrimSpace(c.Query("category"))
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := payload.ParseTime(raw)
		if err != nil {
			return f, apperr.Validation("Fecha inválida")
		}
		f.Day = &d
	}
	return f, nil
}
