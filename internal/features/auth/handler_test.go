package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// photoStore hands out a new handle per upload and records deletions.
type photoStore struct {
	mu      sync.Mutex
	uploads int
	deleted []string
}

func (s *photoStore) Upload(_ context.Context, path string, _ io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	return fmt.Sprintf("%s/avatar%d", path, s.uploads), nil
}

func (s *photoStore) DownloadURL(_ context.Context, handle string) (string, error) {
	return "https://cdn.test/" + handle + ".png", nil
}

func (s *photoStore) Delete(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, handle)
	return nil
}

func newRouter(f *fixture) *gin.Engine {
	return newRouterWithStore(f, &photoStore{})
}

func newRouterWithStore(f *fixture, store *photoStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/api/v1"), f.svc, store, noLimit)
	return r
}

func doJSON(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func TestSignUpAndProfileFlow(t *testing.T) {
	f := newFixture()
	r := newRouter(f)
	f.provider.On("SignUp", mock.Anything, "ana@example.com", "secret1", "Ana").Return(traveller(), nil)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/signup", "", SignUpRequest{
		Email: "ana@example.com", Password: "secret1", DisplayName: "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auth AuthResponse
	decodeData(t, w, &auth)
	require.NotEmpty(t, auth.AccessToken)

	w = doJSON(r, http.MethodGet, "/api/v1/users/me", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me Profile
	decodeData(t, w, &me)
	assert.Equal(t, "uid-1", me.ID)

	w = doJSON(r, http.MethodPatch, "/api/v1/users/me", auth.AccessToken, map[string]string{"bio": "Hi there"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &me)
	assert.Equal(t, "Hi there", me.Bio)

	w = doJSON(r, http.MethodGet, "/api/v1/users/uid-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var public map[string]interface{}
	decodeData(t, w, &public)
	assert.Equal(t, "Hi there", public["bio"])
	assert.NotContains(t, public, "email")
}

func TestProfileEndpointsRequireAuth(t *testing.T) {
	r := newRouter(newFixture())

	w := doJSON(r, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/v1/users/me", "not-a-token", map[string]string{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileValidation(t *testing.T) {
	f := newFixture()
	r := newRouter(f)
	_, err := f.svc.EnsureProfile(context.Background(), traveller())
	require.NoError(t, err)
	token, _, err := f.tokens.Generate("uid-1", "ana@example.com")
	require.NoError(t, err)

	w := doJSON(r, http.MethodPatch, "/api/v1/users/me", token, map[string]string{"displayName": "A"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "displayName", body["field"])
}

func TestLoginErrors(t *testing.T) {
	f := newFixture()
	r := newRouter(f)
	f.provider.On("SignIn", mock.Anything, "ana@example.com", "badpass").Return(nil, apperrors.ErrUnauthenticated)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ana@example.com", Password: "badpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func uploadPhoto(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadProfilePictureReplacesPrevious(t *testing.T) {
	f := newFixture()
	store := &photoStore{}
	r := newRouterWithStore(f, store)
	_, err := f.svc.EnsureProfile(context.Background(), traveller())
	require.NoError(t, err)
	token, _, err := f.tokens.Generate("uid-1", "ana@example.com")
	require.NoError(t, err)
	f.provider.On("UpdateUser", mock.Anything, "uid-1", (*string)(nil), mock.Anything).Return(nil)

	w := uploadPhoto(t, r, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me Profile
	decodeData(t, w, &me)
	assert.Equal(t, "https://cdn.test/profiles/uid-1/avatar1.png", me.PhotoURL)
	assert.Empty(t, store.deleted)

	w = uploadPhoto(t, r, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &me)
	assert.Equal(t, "https://cdn.test/profiles/uid-1/avatar2.png", me.PhotoURL)
	assert.Equal(t, []string{"profiles/uid-1/avatar1"}, store.deleted)

	stored, err := f.repo.GetProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "profiles/uid-1/avatar2", stored.PhotoHandle)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture()
	r := newRouter(f)
	f.provider.On("SendPasswordReset", mock.Anything, "ana@example.com").Return(nil)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/password-reset", "", PasswordResetRequest{Email: "ana@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/password-reset", "", PasswordResetRequest{Email: "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
