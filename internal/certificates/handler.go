package certificates

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

// RegisterRoutes attaches certificate routes; admin guards the mutations.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/certificates")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", admin, h.create)
	g.PUT("/:id", admin, h.update)
	g.DELETE("/:id", admin, h.remove)
}

func (h *Handler) list(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), ListOptions))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, page)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	cert, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, cert)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := validate.Decode(c.Request, &in); err != nil {
		h.fail(c, err)
		return
	}

	cert, err := h.Svc.Create(c.Request.Context(), in, validate.File(c.Request, imageSlot.Field))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.RecordIDKey, cert.ID)
	respond.Created(c, cert)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.RecordIDKey, id)

	var in Input
	if err := validate.Decode(c.Request, &in); err != nil {
		h.fail(c, err)
		return
	}

	cert, err := h.Svc.Update(c.Request.Context(), id, in, validate.File(c.Request, imageSlot.Field))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, cert)
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
		respond.Error(c, http.StatusNotFound, "not_found", "Certificate not found", nil)
		return
	}
	respond.Internal(c, err)
}
