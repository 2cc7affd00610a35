package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-service/internal/blog"
	"blog-service/internal/blog/repository"
	"blog-service/internal/blog/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.New(repository.NewMemoryRepository())
	NewBlogHandler(svc).Register(g)
	return g
}

func doJSON(t *testing.T, g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createPost(t *testing.T, g *gin.Engine, body string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, g, http.MethodPost, "/blogs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func TestCreateBlogPost(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post","author":"Ada"}`)
	id, ok := created["id"].(string)
	require.True(t, ok)
	require.Len(t, id, 24)
	assert.Equal(t, "Hello", created["title"])
	assert.Equal(t, "First post", created["body"])
	assert.Equal(t, "Ada", created["author"])
	assert.NotEmpty(t, created["createdAt"])
	assert.NotEmpty(t, created["updatedAt"])
}

func TestCreateBlogPostDefaultsAuthor(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post"}`)
	assert.Equal(t, blog.DefaultAuthor, created["author"])

	created = createPost(t, g, `{"title":"Hello","body":"First post","author":""}`)
	assert.Equal(t, blog.DefaultAuthor, created["author"])
}

func TestCreateBlogPostValidation(t *testing.T) {
	g := newTestRouter()

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"body":"b"}`},
		{"missing body", `{"title":"t"}`},
		{"empty title", `{"title":"","body":"b"}`},
		{"empty body", `{"title":"t","body":""}`},
		{"malformed json", `{"title":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, g, http.MethodPost, "/blogs", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, blog.CategoryValidation, resp["error"])
			assert.NotEmpty(t, resp["message"])
		})
	}

	// Nothing may be stored after the rejected requests.
	w := doJSON(t, g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListBlogPostsNewestFirst(t *testing.T) {
	g := newTestRouter()

	for _, title := range []string{"first", "second", "third"} {
		createPost(t, g, fmt.Sprintf(`{"title":%q,"body":"b"}`, title))
	}

	w := doJSON(t, g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0]["title"])
	assert.Equal(t, "second", list[1]["title"])
	assert.Equal(t, "first", list[2]["title"])
}

func TestListBlogPostsEmpty(t *testing.T) {
	g := newTestRouter()

	w := doJSON(t, g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetBlogPost(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post","author":"Ada"}`)
	id := created["id"].(string)

	w := doJSON(t, g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Hello", got["title"])
}

func TestGetBlogPostUnknownID(t *testing.T) {
	g := newTestRouter()

	w := doJSON(t, g, http.MethodGet, "/blogs/653f1f77bcf86cd799439011", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, blog.CategoryNotFound, resp["error"])
}

func TestMalformedIDIsRejectedBeforeLookup(t *testing.T) {
	g := newTestRouter()

	// A short numeric id must read as a bad identifier, never as missing.
	cases := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"t","body":"b"}`},
		{http.MethodDelete, ""},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			w := doJSON(t, g, tc.method, "/blogs/123", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, blog.CategoryInvalidID, resp["error"])
			assert.NotEqual(t, blog.CategoryNotFound, resp["error"])
		})
	}
}

func TestUpdateBlogPost(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post","author":"Ada"}`)
	id := created["id"].(string)

	// Author present: full replace.
	w := doJSON(t, g, http.MethodPut, "/blogs/"+id, `{"title":"Hi","body":"Edited","author":"Grace"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "Hi", updated["title"])
	assert.Equal(t, "Edited", updated["body"])
	assert.Equal(t, "Grace", updated["author"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])

	// Author omitted: stored value stays.
	w = doJSON(t, g, http.MethodPut, "/blogs/"+id, `{"title":"Hi again","body":"Edited again"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decodeBody(t, w)
	assert.Equal(t, "Grace", updated["author"])

	// Author empty: treated as omitted.
	w = doJSON(t, g, http.MethodPut, "/blogs/"+id, `{"title":"Once more","body":"Edited once more","author":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decodeBody(t, w)
	assert.Equal(t, "Grace", updated["author"])
}

func TestUpdateBlogPostValidation(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post"}`)
	id := created["id"].(string)

	w := doJSON(t, g, http.MethodPut, "/blogs/"+id, `{"body":"b"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, blog.CategoryValidation, resp["error"])

	// Rejected update must not change the stored post.
	w = doJSON(t, g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "Hello", got["title"])
}

func TestUpdateBlogPostUnknownID(t *testing.T) {
	g := newTestRouter()

	w := doJSON(t, g, http.MethodPut, "/blogs/653f1f77bcf86cd799439011", `{"title":"t","body":"b"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, blog.CategoryNotFound, resp["error"])
}

func TestDeleteBlogPost(t *testing.T) {
	g := newTestRouter()

	created := createPost(t, g, `{"title":"Hello","body":"First post"}`)
	id := created["id"].(string)

	w := doJSON(t, g, http.MethodDelete, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, id, resp["id"])
	assert.NotEmpty(t, resp["message"])

	// Gone afterwards.
	w = doJSON(t, g, http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	// Deleting again reports not found.
	w = doJSON(t, g, http.MethodDelete, "/blogs/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	resp = decodeBody(t, w)
	assert.Equal(t, blog.CategoryNotFound, resp["error"])
}

// failingRepo simulates a store outage.
type failingRepo struct{}

var errStoreDown = errors.New("connection reset by peer")

func (failingRepo) Create(context.Context, *blog.Post) (*blog.Post, error) { return nil, errStoreDown }
func (failingRepo) List(context.Context) ([]*blog.Post, error)             { return nil, errStoreDown }
func (failingRepo) Get(context.Context, primitive.ObjectID) (*blog.Post, error) {
	return nil, errStoreDown
}
func (failingRepo) Update(context.Context, primitive.ObjectID, repository.UpdateFields) (*blog.Post, error) {
	return nil, errStoreDown
}
func (failingRepo) Delete(context.Context, primitive.ObjectID) error { return errStoreDown }

func TestStoreFailureIsServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	NewBlogHandler(service.New(failingRepo{})).Register(g)

	w := doJSON(t, g, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, blog.CategoryServer, resp["error"])
	// store detail must not leak to clients
	assert.NotContains(t, resp["message"], "connection reset")

	w = doJSON(t, g, http.MethodPost, "/blogs", `{"title":"t","body":"b"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp = decodeBody(t, w)
	assert.Equal(t, blog.CategoryServer, resp["error"])
}
