package posts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	requireAuth := func(c *gin.Context) {
		uid := c.GetHeader("X-Test-User")
		if uid == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		auth.SetSession(c, member(uid))
		c.Next()
	}
	pass := func(c *gin.Context) { c.Next() }
	svc := NewService(NewRepository(docstore.NewMemoryDatabase()), nil, clock())
	RegisterRoutes(r.Group("/api/v1"), svc, requireAuth, pass, pass)
	return r
}

func call(r http.Handler, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostEndpoints(t *testing.T) {
	r := newRouter()

	for _, d := range []CreatePostRequest{
		draft("Hostel lockers", "tip", "gear"),
		draft("Safe areas at night?", "question", "night"),
		draft("Fake police", "warning", "scam"),
	} {
		w := call(r, http.MethodPost, "/api/v1/community/posts", "u1", d)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var list struct {
		Data []Post `json:"data"`
	}
	w := call(r, http.MethodGet, "/api/v1/community/posts?q=SCAM", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Fake police", list.Data[0].Title)
	id := list.Data[0].ID.Hex()

	w = call(r, http.MethodPost, "/api/v1/community/posts/"+id+"/vote", "", map[string]string{"direction": "up"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodPost, "/api/v1/community/posts/"+id+"/vote", "u2", map[string]string{"direction": "down"})
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Data Post `json:"data"`
	}
	w = call(r, http.MethodGet, "/api/v1/community/posts/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, 1, detail.Data.Downvotes)
	assert.Equal(t, 1, detail.Data.ViewCount)
	assert.Equal(t, []string{"scam"}, detail.Data.Tags)

	w = call(r, http.MethodPost, "/api/v1/community/posts", "u1", CreatePostRequest{Title: "t", Body: "b", Category: "rant"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListPostsHonoursPage(t *testing.T) {
	r := newRouter()
	for _, title := range []string{"First tip", "Second tip", "Third tip"} {
		w := call(r, http.MethodPost, "/api/v1/community/posts", "u1", draft(title, "tip"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var list struct {
		Data []Post `json:"data"`
		Page int    `json:"page"`
	}
	w := call(r, http.MethodGet, "/api/v1/community/posts?category=tip&page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Page)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "First tip", list.Data[0].Title)
}
