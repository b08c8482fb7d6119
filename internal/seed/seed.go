// Package seed loads the default catalog into empty stores.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"realestate-backend/internal/maps"
	"realestate-backend/internal/properties"
	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/shared/validate"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the seed file format.
type Catalog struct {
	Properties []PropertyEntry `yaml:"properties"`
	Maps       []MapEntry      `yaml:"maps"`
}

type PropertyEntry struct {
	Title        string   `yaml:"title"`
	Location     string   `yaml:"location"`
	City         string   `yaml:"city"`
	Type         string   `yaml:"type"`
	Purpose      string   `yaml:"purpose"`
	Price        float64  `yaml:"price"`
	Area         float64  `yaml:"area"`
	AreaUnit     string   `yaml:"areaUnit"`
	Bedrooms     int      `yaml:"bedrooms"`
	Bathrooms    int      `yaml:"bathrooms"`
	Description  string   `yaml:"description"`
	ContactPhone string   `yaml:"contactPhone"`
	Status       string   `yaml:"status"`
	Images       []string `yaml:"images"`
}

type MapEntry struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	PdfURL      string   `yaml:"pdfUrl"`
	Size        string   `yaml:"size"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalog decodes a YAML catalog. Unknown keys are rejected.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return cat, nil
}

// LoadCatalogFile reads a catalog from path; an empty path means the embedded one.
func LoadCatalogFile(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Targets are the services seeded records go through, so they are validated
// and normalized like any admin submission.
type Targets struct {
	Properties *properties.Service
	Maps       *maps.Service
}

// Result reports how many records each kind received.
type Result struct {
	Properties int
	Maps       int
}

// SeedIfEmpty inserts the catalog entries of each kind whose store is empty.
func SeedIfEmpty(ctx context.Context, t Targets, cat Catalog) (Result, error) {
	var res Result

	if n, err := t.Properties.Count(ctx); err != nil {
		return res, fmt.Errorf("count properties: %w", err)
	} else if n == 0 {
		for i, e := range cat.Properties {
			if _, err := t.Properties.Create(ctx, e.input(), nil); err != nil {
				return res, fmt.Errorf("seed property %d (%s): %w", i, e.Title, err)
			}
			res.Properties++
		}
	}

	if n, err := t.Maps.Count(ctx); err != nil {
		return res, fmt.Errorf("count maps: %w", err)
	} else if n == 0 {
		for i, e := range cat.Maps {
			if _, err := t.Maps.Create(ctx, e.input(), maps.Uploads{}); err != nil {
				return res, fmt.Errorf("seed map %d (%s): %w", i, e.Title, err)
			}
			res.Maps++
		}
	}

	if res.Properties > 0 || res.Maps > 0 {
		telemetry.Info("seed.complete", map[string]any{
			"properties": res.Properties,
			"maps":       res.Maps,
		})
	}
	return res, nil
}

func (e PropertyEntry) input() properties.Input {
	images := validate.StringList(e.Images)
	return properties.Input{
		Title:        &e.Title,
		Location:     &e.Location,
		City:         orDefault(e.City, "lahore"),
		Type:         orDefault(e.Type, "house"),
		Description:  &e.Description,
		Purpose:      optional(e.Purpose),
		Status:       optional(e.Status),
		Price:        &e.Price,
		Area:         &e.Area,
		AreaUnit:     optional(e.AreaUnit),
		Bedrooms:     &e.Bedrooms,
		Bathrooms:    &e.Bathrooms,
		ContactPhone: &e.ContactPhone,
		Images:       &images,
	}
}

func (e MapEntry) input() maps.Input {
	tags := validate.StringList(e.Tags)
	return maps.Input{
		Title:       &e.Title,
		Description: &e.Description,
		Category:    optional(e.Category),
		PdfURL:      &e.PdfURL,
		Image:       optional(e.Image),
		Tags:        &tags,
		Size:        &e.Size,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) *string {
	if s == "" {
		return &def
	}
	return &s
}
