package docs

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	authormodel "library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

func jsonFields(v any) []string {
	var fields []string
	typ := reflect.TypeOf(v)
	for i := 0; i < typ.NumField(); i++ {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

func schemaFields(s Schema) []string {
	fields := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

func TestLoad_DocumentsEveryField(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	schemas := doc.Components.Schemas
	cases := map[string]any{
		"Author":        authormodel.AuthorResponse{},
		"AuthorRequest": authormodel.AuthorRequest{},
		"Book":          bookmodel.BookResponse{},
		"BookRequest":   bookmodel.BookRequest{},
		"AuthorBook":    bookmodel.AuthorBook{},
	}
	for name, v := range cases {
		require.Contains(t, schemas, name)
		assert.Equal(t, jsonFields(v), schemaFields(schemas[name]), name)
	}

	assert.Equal(t, authormodel.MaxNameLength, schemas["AuthorRequest"].Properties["first_name"].MaxLength)
	assert.Equal(t, bookmodel.MaxTitleLength, schemas["BookRequest"].Properties["title"].MaxLength)
	assert.Equal(t, bookmodel.MaxPublishedLength, schemas["BookRequest"].Properties["published"].MaxLength)
}

func TestLoad_DocumentsEveryRoute(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	for _, p := range []string{
		"/health", "/authors", "/authors/{id}", "/authors/{id}/books",
		"/books", "/books/{id}", "/books/{id}/authors", "/books/{id}/authors/{authorId}",
	} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/books/{id}/authors/{authorId}"], "put")
	assert.Contains(t, doc.Paths["/books/{id}/authors/{authorId}"], "delete")
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, "2.3.4")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "yaml")

	var doc Document
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.3.4", doc.Info.Version)
	assert.NotEmpty(t, doc.Components.Schemas)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/openapi.yaml", w.Header().Get("Location"))
}
