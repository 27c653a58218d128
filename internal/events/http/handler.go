package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/events/domain"
	"github.com/calendario-app/calendario-backend/internal/events/feed"
	"github.com/calendario-app/calendario-backend/internal/events/service"
	"github.com/calendario-app/calendario-backend/internal/httpx"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

type Handler struct {
	svc *service.Service
	now func() time.Time
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/export.ics", h.Export)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/work-status", h.SetWorkStatus)
}

type workStatusBody struct {
	WorkStatus string `json:"workStatus"`
}

func (h *Handler) List(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.list", err)
		return
	}
	f, err := listFilter(c)
	if err != nil {
		httpx.Fail(c, "events.list", err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), owner, f)
	if err != nil {
		httpx.Fail(c, "events.list", err)
		return
	}
	httpx.OK(c, http.StatusOK, out)
}

// Export answers the same query as List as an iCalendar document.
func (h *Handler) Export(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.export", err)
		return
	}
	f, err := listFilter(c)
	if err != nil {
		httpx.Fail(c, "events.export", err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), owner, f)
	if err != nil {
		httpx.Fail(c, "events.export", err)
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Status(http.StatusOK)
	if err := feed.Write(c.Writer, "Calendario", out, h.now()); err != nil {
		// Headers are gone; all that is left is the log line.
		httpx.Log(c, "events.export", err)
	}
}

func (h *Handler) Get(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.get", err)
		return
	}
	e, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		httpx.Fail(c, "events.get", err)
		return
	}
	httpx.OK(c, http.StatusOK, e)
}

func (h *Handler) Create(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.create", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "events.create", err)
		return
	}
	e, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		httpx.Fail(c, "events.create", err)
		return
	}
	httpx.Created(c, e)
}

func (h *Handler) Update(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.update", err)
		return
	}
	var in domain.Input
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, "events.update", err)
		return
	}
	e, err := h.svc.Update(c.Request.Context(), owner, c.Param("id"), in)
	if err != nil {
		httpx.Fail(c, "events.update", err)
		return
	}
	httpx.OK(c, http.StatusOK, e)
}

func (h *Handler) SetWorkStatus(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.work_status", err)
		return
	}
	var body workStatusBody
	if err := httpx.BindJSON(c, &body); err != nil {
		httpx.Fail(c, "events.work_status", err)
		return
	}
	e, err := h.svc.SetWorkStatus(c.Request.Context(), owner, c.Param("id"), body.WorkStatus)
	if err != nil {
		httpx.Fail(c, "events.work_status", err)
		return
	}
	httpx.OK(c, http.StatusOK, e)
}

func (h *Handler) Delete(c *gin.Context) {
	owner, err := auth.OwnerID(c)
	if err != nil {
		httpx.Fail(c, "events.delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		httpx.Fail(c, "events.delete", err)
		return
	}
	httpx.OK(c, http.StatusOK, gin.H{})
}

func listFilter(c *gin.Context) (domain.ListFilter, error) {
	var f domain.ListFilter

	start, end := strings.TrimSpace(c.Query("start")), strings.TrimSpace(c.Query("end"))
	if start != "" && end != "" {
		s, err := payload.ParseTime(start)
		if err != nil {
			return f, apperr.Validation("Fecha de inicio inválida")
		}
		e, err := payload.ParseTime(end)
		if err != nil {
			return f, apperr.Validation("Fecha de fin inválida")
		}
		f.Start, f.End = &s, &e
	}
	f.Category = strings.TrimSpace(c.Query("category"))
	f.CompanyID = strings.TrimSpace(c.Query("companyId"))
	if raw := strings.TrimSpace(c.Query("isWork")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperr.Validation("Valor de isWork inválido")
		}
		f.IsWork = &v
	}
	return f, nil
}
