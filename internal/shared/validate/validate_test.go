package validate

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Title   *string     `json:"title" create:"required,notblank" update:"omitnil,notblank"`
	Price   *float64    `json:"price" create:"required,min=0" update:"omitnil,min=0"`
	Purpose *string     `json:"purpose" create:"required,oneof=sale rent" update:"omitnil,oneof=sale rent"`
	Tags    *StringList `json:"tags"`
}

func strPtr(s string) *string { return &s }

func TestCreateReportsMissingFieldsByJSONName(t *testing.T) {
	errs := Create(&sampleInput{Title: strPtr("Villa"), Purpose: strPtr("sale")})
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "price is required", errs[0].Message)
}

func TestCreateRejectsBlankAndNegative(t *testing.T) {
	price := -1.0
	errs := Create(&sampleInput{Title: strPtr(""), Price: &price, Purpose: strPtr("lease")})
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("price"))
	assert.True(t, errs.Has("purpose"))
}

func TestUpdateIgnoresUnsuppliedFields(t *testing.T) {
	assert.Empty(t, Update(&sampleInput{}))

	price := -5.0
	errs := Update(&sampleInput{Price: &price})
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
}

func TestDecodeJSON(t *testing.T) {
	body := `{"title":"Villa","price":100000,"tags":"[\"a\",\"b\"]"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var in sampleInput
	require.NoError(t, Decode(req, &in))
	assert.Equal(t, "Villa", *in.Title)
	assert.Equal(t, 100000.0, *in.Price)
	assert.Equal(t, StringList{"a", "b"}, *in.Tags)
}

func TestDecodeJSONTypeMismatchIsFieldError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":"cheap"}`))
	req.Header.Set("Content-Type", "application/json")

	var in sampleInput
	err := Decode(req, &in)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("price"))
}

func TestDecodeMultipart(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", "Plot"))
	require.NoError(t, w.WriteField("price", "2500.5"))
	require.NoError(t, w.WriteField("tags", "Lahore, Master-Plan"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var in sampleInput
	require.NoError(t, Decode(req, &in))
	assert.Equal(t, "Plot", *in.Title)
	assert.Equal(t, 2500.5, *in.Price)
	assert.Equal(t, []string{"lahore", "master-plan"}, Tags(*in.Tags))
}

func TestDecodeFormBadNumber(t *testing.T) {
	form := url.Values{"price": {"abc"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in sampleInput
	err := Decode(req, &in)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("price"))
}

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "comma string", in: []string{"Lahore, Master-Plan"}, want: []string{"lahore", "master-plan"}},
		{name: "list", in: []string{" A ", "b", "a"}, want: []string{"a", "b"}},
		{name: "empties", in: []string{"", " , "}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("buyer@example.com"))
	assert.False(t, Email("not-an-email"))
	assert.False(t, Email(""))
}
