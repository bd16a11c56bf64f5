package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/shared/apperror"
)

var errMissing = errors.New("missing")

var known = map[error]ErrorSpec{
	errMissing: {Status: http.StatusNotFound, Code: "THING_NOT_FOUND", Message: "no such thing"},
}

func render(t *testing.T, err error) (*httptest.ResponseRecorder, Response, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handled := HandleError(c, err, known)

	var body Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body, handled
}

func TestHandleError(t *testing.T) {
	_, _, handled := render(t, nil)
	assert.False(t, handled)

	w, body, handled := render(t, errors.Join(errMissing, errors.New("ctx")))
	assert.True(t, handled)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "THING_NOT_FOUND", body.Error.Code)
	assert.False(t, body.Success)

	w, body, _ = render(t, &apperror.ValidationError{Fields: map[string]string{"title": "title is required"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, map[string]interface{}{"title": "title is required"}, body.Error.Details)

	w, body, _ = render(t, apperror.Constraint("create", errors.New("CHECK constraint failed")))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body.Error.Code)

	w, body, _ = render(t, apperror.Persistence("list", errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestSuccessWithMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMeta(c, http.StatusOK, []int{1, 2}, &Meta{Limit: 2, Offset: 0, Total: 5})

	assert.JSONEq(t, `{"success":true,"data":[1,2],"meta":{"limit":2,"offset":0,"total":5}}`, w.Body.String())
}
