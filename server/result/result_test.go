package result_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/ggpagent/server/result"
)

func Test_Text_WriteResponse(t *testing.T) {
	r := result.Text(http.StatusOK, "ready", "started %s", "g1")

	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())
	assert.False(t, r.IsErr)
	assert.Equal(t, "started g1", r.InternalMsg)
}

func Test_TextErr_WriteResponse(t *testing.T) {
	r := result.TextErr(http.StatusBadRequest, "bad input", "parse: %v", "oops")

	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad input", w.Body.String())
	assert.True(t, r.IsErr)
	assert.Equal(t, "parse: oops", r.InternalMsg)
}

func Test_WithHeader(t *testing.T) {
	r := result.Text(http.StatusOK, "body").
		WithHeader("Access-Control-Allow-Origin", "*").
		WithHeader("Content-Type", "text/acl")

	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "text/acl", w.Header().Get("Content-Type"))
}

func Test_WithHeader_doesNotMutateOriginal(t *testing.T) {
	base := result.Text(http.StatusOK, "body")
	withHeader := base.WithHeader("X-Test", "1")

	w := httptest.NewRecorder()
	base.WriteResponse(w)

	assert.Empty(t, w.Header().Get("X-Test"))
	assert.NotEqual(t, base, withHeader)
}

func Test_WriteResponse_unpopulated_panics(t *testing.T) {
	assert.Panics(t, func() {
		result.Result{}.WriteResponse(httptest.NewRecorder())
	})
}
