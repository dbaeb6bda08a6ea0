package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refurnish/refurnish-backend/internal/auth"
	canvasdomain "github.com/refurnish/refurnish-backend/internal/canvas/domain"
	"github.com/refurnish/refurnish-backend/internal/images"
	"github.com/refurnish/refurnish-backend/internal/regions"
)

type fakeStore struct {
	byPublicID map[string]*Project
	nextID     int64
}

func (f *fakeStore) Create(_ context.Context, _, name, furnitureType string) (*Project, error) {
	f.nextID++
	p := &Project{
		ID:            f.nextID,
		PublicID:      "furnish-test",
		Name:          name,
		FurnitureType: furnitureType,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.byPublicID[p.PublicID] = p
	return p, nil
}

func (f *fakeStore) List(_ context.Context, _ string) ([]Project, error) {
	out := make([]Project, 0, len(f.byPublicID))
	for _, p := range f.byPublicID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, _, publicID string) (*Project, error) {
	p, ok := f.byPublicID[publicID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) Update(_ context.Context, _, publicID, name, furnitureType string) (*Project, error) {
	p, ok := f.byPublicID[publicID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Name = name
	p.FurnitureType = furnitureType
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, _, publicID string) (bool, error) {
	if _, ok := f.byPublicID[publicID]; !ok {
		return false, nil
	}
	delete(f.byPublicID, publicID)
	return true, nil
}

type fakeImages struct{ items []images.Image }

func (f *fakeImages) ListByProject(context.Context, int64) ([]images.Image, error) {
	return f.items, nil
}

type fakeRegions struct{ items []regions.Region }

func (f *fakeRegions) ListByProject(context.Context, int64) ([]regions.Region, error) {
	return f.items, nil
}

type fakeCanvas struct{ state *canvasdomain.State }

func (f *fakeCanvas) Get(context.Context, int64) (*canvasdomain.State, error) {
	if f.state == nil {
		return nil, canvasdomain.ErrStateNotFound
	}
	return f.state, nil
}

type fakeDropper struct{ dropped []string }

func (f *fakeDropper) Drop(_ context.Context, publicID string) error {
	f.dropped = append(f.dropped, publicID)
	return nil
}

func setupProjectsRouter(t *testing.T, canvas *fakeCanvas) (*gin.Engine, *fakeStore, *fakeDropper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeStore{byPublicID: make(map[string]*Project)}
	dropper := &fakeDropper{}

	r := gin.New()
	grp := r.Group("/api/v1/projects")
	grp.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "00000000-0000-0000-0000-000000000001")
	})
	Register(grp, store,
		&fakeImages{items: []images.Image{{ID: 1, URL: "/uploads/a.png", Filename: "a.png", Width: 800, Height: 600}}},
		&fakeRegions{items: []regions.Region{{ID: 1, Name: "Seat", ColorHex: "#9caf88", ShapeKind: regions.ShapeRect, Geometry: json.RawMessage(`{}`), Opacity: 1, BlendMode: "multiply"}}},
		canvas, dropper)

	return r, store, dropper
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProject(t *testing.T) {
	r, _, _ := setupProjectsRouter(t, &fakeCanvas{})

	t.Run("returns public id and timestamps", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"Living room chair","furniture_type":"chair"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK      bool    `json:"ok"`
			Project Project `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Project.PublicID)
		assert.False(t, resp.Project.CreatedAt.IsZero())
		assert.False(t, resp.Project.UpdatedAt.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProjectDetail(t *testing.T) {
	t.Run("404 for nonexistent project", func(t *testing.T) {
		r, _, _ := setupProjectsRouter(t, &fakeCanvas{})
		w := do(t, r, http.MethodGet, "/api/v1/projects/furnish-ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("aggregates images, regions and canvas", func(t *testing.T) {
		canvas := &fakeCanvas{state: &canvasdomain.State{State: json.RawMessage(`{"objects":[]}`), Zoom: 1.0}}
		r, _, _ := setupProjectsRouter(t, canvas)
		require.Equal(t, http.StatusCreated,
			do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"Chair"}`).Code)

		w := do(t, r, http.MethodGet, "/api/v1/projects/furnish-test", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Project Project          `json:"project"`
			Images  []images.Image   `json:"images"`
			Regions []regions.Region `json:"regions"`
			Canvas  *struct {
				Zoom float64 `json:"zoom"`
			} `json:"canvas"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Chair", resp.Project.Name)
		assert.Len(t, resp.Images, 1)
		assert.Len(t, resp.Regions, 1)
		require.NotNil(t, resp.Canvas)
		assert.Equal(t, 1.0, resp.Canvas.Zoom)
	})

	t.Run("fresh project has null canvas", func(t *testing.T) {
		r, _, _ := setupProjectsRouter(t, &fakeCanvas{})
		require.Equal(t, http.StatusCreated,
			do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"Chair"}`).Code)

		w := do(t, r, http.MethodGet, "/api/v1/projects/furnish-test", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "null", string(resp["canvas"]))
	})
}

func TestUpdateProject(t *testing.T) {
	r, _, _ := setupProjectsRouter(t, &fakeCanvas{})
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"Chair"}`).Code)

	w := do(t, r, http.MethodPut, "/api/v1/projects/furnish-test", `{"name":"Armchair","furniture_type":"chair"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Project Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Armchair", resp.Project.Name)

	w = do(t, r, http.MethodPut, "/api/v1/projects/furnish-ghost", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject(t *testing.T) {
	r, store, dropper := setupProjectsRouter(t, &fakeCanvas{})
	require.Equal(t, http.StatusCreated,
		do(t, r, http.MethodPost, "/api/v1/projects", `{"name":"Chair"}`).Code)

	w := do(t, r, http.MethodDelete, "/api/v1/projects/furnish-test", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.byPublicID)
	assert.Equal(t, []string{"furnish-test"}, dropper.dropped)

	w = do(t, r, http.MethodDelete, "/api/v1/projects/furnish-test", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
