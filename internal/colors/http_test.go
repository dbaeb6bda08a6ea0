package colors

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refurnish/refurnish-backend/internal/auth"
)

type memColors struct {
	touched []string
}

func (m *memColors) Touch(_ context.Context, _, colorHex string) error {
	m.touched = append(m.touched, colorHex)
	return nil
}

func (m *memColors) List(context.Context, string) ([]RecentColor, error) {
	out := make([]RecentColor, 0, len(m.touched))
	for i := len(m.touched) - 1; i >= 0; i-- {
		out = append(out, RecentColor{ColorHex: m.touched[i]})
	}
	return out, nil
}

func setupColorsRouter(t *testing.T) (*gin.Engine, *memColors) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memColors{}
	r := gin.New()
	grp := r.Group("/api/v1/colors")
	grp.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "00000000-0000-0000-0000-000000000001")
	})
	Register(grp, store)
	return r, store
}

func TestTouchColor(t *testing.T) {
	r, store := setupColorsRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/colors/recent",
		bytes.NewBufferString(`{"color_hex":"#9CAF88"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"#9caf88"}, store.touched, "hex is normalized before storing")
}

func TestTouchColor_Rejected(t *testing.T) {
	r, store := setupColorsRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"not hex", `{"color_hex":"sage"}`},
		{"short hex", `{"color_hex":"#9cf"}`},
		{"outside palette", `{"color_hex":"#123456"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/colors/recent",
				bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, store.touched)
}

func TestListRecentColors(t *testing.T) {
	r, store := setupColorsRouter(t)
	store.touched = []string{"#9caf88", "#263249"}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/colors/recent", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Colors []RecentColor `json:"colors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Colors, 2)
	assert.Equal(t, "#263249", resp.Colors[0].ColorHex, "most recent first")
}
