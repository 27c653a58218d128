package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/categories/domain"
	"github.com/calendario-app/calendario-backend/internal/categories/service"
	"github.com/calendario-app/calendario-backend/internal/httpx"
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
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "categories.list", err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), owner)
	if err != nil {
		httpx.Fail(c, "categories.list", err)
		return
	}
	httpx.OK(c, http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "categories.get", err)
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		httpx.Fail(c, "categories.get", err)
		return
	}
	httpx.OK(c, http.StatusOK, cat)
}

func (h *Handler) Create(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "categories.create", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "categories.create", err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		httpx.Fail(c, "categories.create", err)
		return
	}
	httpx.Created(c, cat)
}

func (h *Handler) Update(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "categories.update", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "categories.update", err)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), owner, c.Param("id"), in)
	if err != nil {
		httpx.Fail(c, "categories.update", err)
		return
	}
	httpx.OK(c, http.StatusOK, cat)
}

func (h *Handler) Delete(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "categories.delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		httpx.Fail(c, "categories.delete", err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{"message": "Categoría eliminada correctamente"})
}
