package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"2147483647", 2147483647, true},
		{"2147483648", 0, false},
		{"3000000000", 0, false},
		{"0", 0, false},
		{"-4", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := newContext("/", gin.Params{{Key: "id", Value: tt.raw}})
			got, ok := ParseIDParam(c, "id")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePagination(t *testing.T) {
	limit, offset := ParsePagination(newContext("/?limit=5&offset=10", nil), 20)
	assert.Equal(t, 5, limit)
	assert.Equal(t, 10, offset)

	limit, offset = ParsePagination(newContext("/?limit=-1&offset=x", nil), 20)
	assert.Equal(t, 20, limit)
	assert.Zero(t, offset)
}
