package inquiries

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"realestate-backend/internal/listquery"
	"realestate-backend/internal/shared/server/middleware"
	"realestate-backend/internal/shared/server/respond"
	"realestate-backend/internal/shared/validate"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches inquiry routes. Submitting is public; reading and
// triage are admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/inquiries")
	g.POST("", h.create)
	g.GET("", admin, h.list)
	g.PATCH("/:id/status", admin, h.setStatus)
	g.DELETE("/:id", admin, h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := validate.Decode(c.Request, &in); err != nil {
		h.fail(c, err)
		return
	}
	inq, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.RecordIDKey, inq.ID)
	respond.Created(c, inq)
}

func (h *Handler) list(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), ListOptions))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, page)
}

func (h *Handler) setStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	var in StatusInput
	if err := validate.Decode(c.Request, &in); err != nil {
		h.fail(c, err)
		return
	}
	inq, err := h.Svc.SetStatus(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, inq)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond.Deleted(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if respond.Input(c, err) {
		return
	}
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Inquiry not found", nil)
		return
	}
	respond.Internal(c, err)
}
