package subscribers

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/subscribers")
	g.POST("", h.subscribe)
	g.GET("", admin, h.list)
	g.DELETE("/:id", admin, h.remove)
}

func (h *Handler) subscribe(c *gin.Context) {
	var in Input
	if err := validate.Decode(c.Request, &in); err != nil {
		h.fail(c, err)
		return
	}
	sub, created, err := h.Svc.Subscribe(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.RecordIDKey, sub.ID)
	if !created {
		respond.OK(c, gin.H{"ok": true, "message": "Already subscribed"})
		return
	}
	respond.Created(c, gin.H{"ok": true})
}

func (h *Handler) list(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), ListOptions))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, page)
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
		respond.Error(c, http.StatusNotFound, "not_found", "Subscriber not found", nil)
		return
	}
	respond.Internal(c, err)
}
