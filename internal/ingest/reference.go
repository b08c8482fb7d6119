package ingest

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// RefKind says where the bytes behind a Reference live.
type RefKind int

const (
	// Uploaded objects were stored by this service.
	Uploaded RefKind = iota
	// External objects are hosted elsewhere and only linked.
	External
)

func (k RefKind) String() string {
	if k == External {
		return "external"
	}
	return "uploaded"
}

// Reference points at a stored or externally hosted file. It serializes as the
// bare URL string in both JSON and SQL.
type Reference struct {
	Kind RefKind
	URL  string
}

// ParseReference classifies s: absolute http(s) URLs are External, anything
// else is a path this service serves.
func ParseReference(s string) Reference {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ExternalURL(s)
	}
	return UploadedURL(s)
}

// ExternalURL builds an External reference.
func ExternalURL(s string) Reference {
	return Reference{Kind: External, URL: strings.TrimSpace(s)}
}

// UploadedURL builds an Uploaded reference.
func UploadedURL(s string) Reference {
	return Reference{Kind: Uploaded, URL: s}
}

func (r Reference) IsZero() bool {
	return r.URL == ""
}

func (r Reference) String() string {
	return r.URL
}

func (r Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.URL)
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseReference(s)
	return nil
}

// Value stores the bare URL.
func (r Reference) Value() (driver.Value, error) {
	return r.URL, nil
}

func (r *Reference) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = Reference{}
	case string:
		*r = ParseReference(v)
	case []byte:
		*r = ParseReference(string(v))
	default:
		return fmt.Errorf("ingest: cannot scan %T into Reference", src)
	}
	return nil
}

// References is an ordered list stored as a JSON array of URL strings.
type References []Reference

// ParseReferences classifies every non-blank entry of urls.
func ParseReferences(urls []string) References {
	out := make(References, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		out = append(out, ParseReference(u))
	}
	return out
}

func (rs References) URLs() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.URL)
	}
	return out
}

func (rs References) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.URLs())
}

func (rs *References) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return err
	}
	*rs = ParseReferences(urls)
	return nil
}

func (rs References) Value() (driver.Value, error) {
	b, err := json.Marshal(rs.URLs())
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (rs *References) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*rs = References{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("ingest: cannot scan %T into References", src)
	}
	return rs.UnmarshalJSON(raw)
}
