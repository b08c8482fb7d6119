// Package stats reports live record counts for the admin dashboard.
package stats

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"realestate-backend/internal/shared/server/respond"
)

// Counter is implemented by every resource service.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Counts is the dashboard payload.
type Counts struct {
	Properties   int `json:"properties"`
	Maps         int `json:"maps"`
	Certificates int `json:"certificates"`
	Inquiries    int `json:"inquiries"`
	Subscribers  int `json:"subscribers"`
}

// Service gathers counts from each kind concurrently.
type Service struct {
	Properties   Counter
	Maps         Counter
	Certificates Counter
	Inquiries    Counter
	Subscribers  Counter
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	g, ctx := errgroup.WithContext(ctx)
	for name, job := range map[string]struct {
		src Counter
		dst *int
	}{
		"properties":   {s.Properties, &out.Properties},
		"maps":         {s.Maps, &out.Maps},
		"certificates": {s.Certificates, &out.Certificates},
		"inquiries":    {s.Inquiries, &out.Inquiries},
		"subscribers":  {s.Subscribers, &out.Subscribers},
	} {
		g.Go(func() error {
			n, err := job.src.Count(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*job.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}

// Handler exposes the admin stats route.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("/stats", admin, h.get)
}

func (h *Handler) get(c *gin.Context) {
	counts, err := h.Svc.Counts(c.Request.Context())
	if err != nil {
		respond.Internal(c, err)
		return
	}
	respond.OK(c, counts)
}
