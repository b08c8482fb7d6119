package maps

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"realestate-backend/internal/ingest"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	DefaultCategory = "general"
)

// PdfMap is a downloadable master-plan document with an optional cover image.
type PdfMap struct {
	ID          string           `db:"id" json:"_id"`
	Title       string           `db:"title" json:"title"`
	Description string           `db:"description" json:"description"`
	Category    string           `db:"category" json:"category"`
	PdfURL      ingest.Reference `db:"pdf_url" json:"pdfUrl"`
	Image       ingest.Reference `db:"image" json:"image"`
	Tags        Tags             `db:"tags" json:"tags"`
	Size        string           `db:"size" json:"size"`
	Status      string           `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// Tags is a normalized tag list stored as a JSON array.
type Tags []string

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("maps: cannot scan %T into Tags", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("maps: decode tags: %w", err)
	}
	*t = out
	return nil
}
