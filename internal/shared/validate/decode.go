package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form/v4"
)

var (
	// ErrMalformedBody is returned when the body cannot be parsed at all.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrBodyTooLarge is returned when the body exceeds the server's limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

const maxMultipartMemory = 32 << 20

var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("json")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return parseStringList(vals), nil
	}, StringList{})
	return d
}

// Decode fills dst from a JSON, multipart or urlencoded body. Type mismatches
// on individual fields come back as Errors; an unreadable body as ErrMalformedBody.
// Multipart file parts stay on r.MultipartForm for the caller.
func Decode(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return bodyError(err)
		}
		return decodeValues(r.MultipartForm.Value, dst)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return bodyError(err)
		}
		return decodeValues(r.PostForm, dst)
	default:
		return decodeJSON(r.Body, dst)
	}
}

// Files returns the uploaded parts for field, in the order they were sent.
func Files(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// File returns the first uploaded part for field, or nil.
func File(r *http.Request, field string) *multipart.FileHeader {
	if files := Files(r, field); len(files) > 0 {
		return files[0]
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

func decodeValues(values url.Values, dst any) error {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	out := make(Errors, 0, len(derrs))
	for field := range derrs {
		out = out.Add(field, fmt.Sprintf("%s has an invalid value", field))
	}
	return out
}

func decodeJSON(body io.Reader, dst any) error {
	if body == nil {
		return nil
	}
	err := json.NewDecoder(body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Field(typeErr.Field, fmt.Sprintf("%s has an invalid value", typeErr.Field))
	}
	return bodyError(err)
}

// StringList accepts a JSON array, a JSON-encoded array inside a string, a
// single plain string, or repeated form values.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = parseStringList([]string{s})
	return nil
}

func parseStringList(vals []string) StringList {
	if len(vals) != 1 {
		return StringList(vals)
	}
	s := strings.TrimSpace(vals[0])
	if s == "" {
		return StringList{}
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return StringList(arr)
		}
	}
	return StringList{s}
}
