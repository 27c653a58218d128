package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/companies/domain"
	"github.com/calendario-app/calendario-backend/internal/companies/service"
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
	rg.GET("/:id/summary", h.Summary)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.list", err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), owner)
	if err != nil {
		httpx.Fail(c, "companies.list", err)
		return
	}
	httpx.OK(c, http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.get", err)
		return
	}
	co, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		httpx.Fail(c, "companies.get", err)
		return
	}
	httpx.OK(c, http.StatusOK, co)
}

func (h *Handler) Summary(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.summary", err)
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		httpx.Fail(c, "companies.summary", err)
		return
	}
	httpx.OK(c, http.StatusOK, sum)
}

func (h *Handler) Create(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.create", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "companies.create", err)
		return
	}
	co, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		httpx.Fail(c, "companies.create", err)
		return
	}
	httpx.Created(c, co)
}

func (h *Handler) Update(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.update", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "companies.update", err)
		return
	}
	co, err := h.svc.Update(c.Request.Context(), owner, c.Param("id"), in)
	if err != nil {
		httpx.Fail(c, "companies.update", err)
		return
	}
	httpx.OK(c, http.StatusOK, co)
}

func (h *Handler) Delete(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "companies.delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		httpx.Fail(c, "companies.delete", err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{"message": "Empresa eliminada correctamente"})
}
