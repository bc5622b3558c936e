package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresAuth(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	cookies, token := f.login(t)
	project := map[string]any{"title": "Folio", "date": "2024-03-01"}

	tests := []struct {
		name       string
		c          call
		wantStatus int
	}{
		{"anonymous read", call{method: http.MethodGet, path: "/admin/collections"}, http.StatusUnauthorized},
		{"session read", call{method: http.MethodGet, path: "/admin/collections", cookies: cookies}, http.StatusOK},
		{"session write without csrf", call{method: http.MethodPost, path: "/admin/projects", body: project, cookies: cookies}, http.StatusForbidden},
		{"session write with wrong csrf", call{method: http.MethodPost, path: "/admin/projects", body: project, cookies: cookies, headers: csrf("nope")}, http.StatusForbidden},
		{"session write with csrf", call{method: http.MethodPost, path: "/admin/projects", body: project, cookies: cookies, headers: csrf(token)}, http.StatusOK},
		{"garbage bearer", call{method: http.MethodGet, path: "/admin/collections", headers: map[string]string{"Authorization": "Bearer nope"}}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.c)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestAdmin_BearerSkipsCSRF(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + f.bearer(t)}

	w := f.do(t, call{method: http.MethodPost, path: "/admin/articles", headers: auth, body: map[string]any{
		"title": "Hello", "excerpt": "e", "content": "c", "date": "2024-01-01",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "hello", decode(t, w)["id"])
}

func TestAdmin_CollectionsAndData(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + f.bearer(t)}

	w := f.do(t, call{method: http.MethodGet, path: "/admin/collections", headers: auth})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["collections"], 5)

	w = f.do(t, call{method: http.MethodPut, path: "/admin/data/experiences", headers: auth, body: []map[string]any{
		{"title": "Engineer", "company": "Acme", "date": "2023"},
		{"title": "Intern", "company": "Initech", "date": "2021"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, call{method: http.MethodGet, path: "/admin/data/experiences", headers: auth})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "experiences", body["collection"])
	assert.Len(t, body["data"], 2)

	w = f.do(t, call{method: http.MethodPut, path: "/admin/data/experiences", headers: auth, body: "\"nope\""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, call{method: http.MethodGet, path: "/admin/data/nope", headers: auth})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_ItemLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + f.bearer(t)}
	project := map[string]any{"title": "Hello World", "date": "2024-03-01", "stack": []string{"go"}}

	first := decode(t, f.do(t, call{method: http.MethodPost, path: "/admin/projects", headers: auth, body: project}))
	second := decode(t, f.do(t, call{method: http.MethodPost, path: "/admin/projects", headers: auth, body: project}))
	assert.Equal(t, "hello-world", first["id"])
	assert.Equal(t, "hello-world-2", second["id"])
	assert.Equal(t, "hello-world-2", second["item"].(map[string]any)["slug"])

	w := f.do(t, call{method: http.MethodPatch, path: "/admin/projects/hello-world-2", headers: auth, body: map[string]any{"title": "Renamed"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)["item"].(map[string]any)
	assert.Equal(t, "Renamed", item["title"])
	assert.Equal(t, []any{"go"}, item["stack"])

	w = f.do(t, call{method: http.MethodPatch, path: "/admin/projects/index-0", headers: auth, body: map[string]any{"id": ""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, call{method: http.MethodPatch, path: "/admin/projects/missing", headers: auth, body: map[string]any{"title": "x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, call{method: http.MethodPost, path: "/admin/projects", headers: auth, body: map[string]any{"date": "2024"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, call{method: http.MethodDelete, path: "/admin/projects/1", headers: auth})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello-world-2", decode(t, w)["item"].(map[string]any)["id"])

	items, err := f.content.List(t.Context(), "projects")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hello-world", items[0].ID())
}

func TestAdmin_Resume(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + f.bearer(t)}

	w := f.do(t, call{method: http.MethodPatch, path: "/admin/resume", headers: auth, body: map[string]any{"name": "Mathis"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = f.do(t, call{method: http.MethodPatch, path: "/admin/resume", headers: auth, body: map[string]any{"title": "Engineer"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"name": "Mathis", "title": "Engineer"}, decode(t, w)["item"])

	w = f.do(t, call{method: http.MethodPatch, path: "/admin/resume/0", headers: auth, body: map[string]any{"name": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Use PATCH /admin/resume for resume updates", decode(t, w)["detail"])
}

func TestAdmin_Resync(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	auth := map[string]string{"Authorization": "Bearer " + f.bearer(t)}

	w := f.do(t, call{method: http.MethodPost, path: "/admin/resync", headers: auth})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["collections"], 5)
}
