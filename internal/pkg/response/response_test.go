package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessAndErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	body = decode(t, w)
	require.Equal(t, "bad request", body["error"])
	require.Equal(t, "BAD_REQ", body["code"])
}

func TestPaginatedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paginated(c, []map[string]any{{"id": 1}, {"id": 2}}, 2, 10)

	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	require.Len(t, body["data"], 2)
	require.Equal(t, float64(2), body["page"])
	require.Equal(t, float64(10), body["limit"])
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.Invalid("title", "Title is required"), 422, "VALIDATION_FAILED"},
		{"unauthenticated", apperrors.ErrUnauthenticated, 401, "AUTH_REQUIRED"},
		{"forbidden", apperrors.ErrForbidden, 403, "FORBIDDEN"},
		{"not found", fmt.Errorf("post: %w", apperrors.ErrNotFound), 404, "NOT_FOUND"},
		{"unavailable", apperrors.Unavailable("find posts", errors.New("timeout")), 503, "SERVICE_UNAVAILABLE"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			FromError(c, tc.err)

			require.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			require.Equal(t, tc.code, body["code"])
			if tc.status == 422 {
				require.Equal(t, "title", body["field"])
				require.Equal(t, "Title is required", body["error"])
			}
			if tc.status == 503 {
				require.Equal(t, true, body["retryable"])
			}
		})
	}
}
