package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreate(t *testing.T) {
	body := "a body that is long enough to pass"
	tests := []struct {
		name   string
		req    postRequest
		fields []string
	}{
		{"valid", postRequest{Title: ptr("Hello there"), Body: ptr(body)}, nil},
		{"missing both", postRequest{}, []string{"title", "body"}},
		{"short title", postRequest{Title: ptr("Hey"), Body: ptr(body)}, []string{"title"}},
		{"long title", postRequest{Title: ptr(strings.Repeat("x", 101)), Body: ptr(body)}, []string{"title"}},
		{"short body", postRequest{Title: ptr("Hello there"), Body: ptr("too short")}, []string{"body"}},
		{"prohibited word", postRequest{Title: ptr("Totally FAKE news"), Body: ptr(body)}, []string{"title"}},
		{"user out of range", postRequest{Title: ptr("Hello there"), Body: ptr(body), UserID: ptr(11)}, []string{"userId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []string
			for _, e := range validateCreate(tt.req) {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidateUpdateChecksSentFieldsOnly(t *testing.T) {
	assert.Empty(t, validateUpdate(postRequest{Title: ptr("A fine new title")}))
	assert.Len(t, validateUpdate(postRequest{Body: ptr("scam")}), 1)
	assert.Len(t, validateUpdate(postRequest{UserID: ptr(0)}), 1)
}

func TestSanitizeStripsMarkup(t *testing.T) {
	req := postRequest{Title: ptr("  <b>Bold</b> title "), Body: ptr("<script>x()</script>plain body")}
	req.sanitize()
	assert.Equal(t, "Bold title", *req.Title)
	assert.NotContains(t, *req.Body, "<script>")

	req = postRequest{
		Title: ptr("&lt;img src=x onerror=alert(1)&gt;Encoded title"),
		Body:  ptr("&lt;script&gt;alert(1)&lt;/script&gt; encoded body text"),
	}
	req.sanitize()
	assert.Equal(t, "Encoded title", *req.Title)
	assert.Equal(t, "encoded body text", *req.Body)
}

func TestParsePagination(t *testing.T) {
	page, size := parsePagination("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = parsePagination("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = parsePagination("-1", "500")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}
