package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/recipe/service"
	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
	Count        int             `json:"count"`
	TotalRecipes int             `json:"totalRecipes"`
	Data         json.RawMessage `json:"data"`
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	col := store.NewFileCollection[recipe.Recipe](afero.NewMemMapFs(), "data", recipe.Collection)
	require.NoError(t, col.Init(context.Background()))
	g := gin.New()
	RegisterRecipeRoutes(g, service.New(store.Guard[recipe.Recipe](col), record.NewClock(time.UTC)))
	return g
}

func do(t *testing.T, g *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestRecipeHandler_CRUD(t *testing.T) {
	g := setup(t)

	code, env := do(t, g, http.MethodPost, "/api/recipes",
		`{"name":"Борщ","author":"Анна","ingredients":"свёкла","instructions":"варить"}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
	require.Equal(t, 1, env.TotalRecipes)
	require.NotEmpty(t, env.Message)
	var created recipe.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, "Борщ", created.Name)

	code, env = do(t, g, http.MethodGet, "/api/recipes", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, env.Count)
	var list []recipe.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, created, list[0])

	code, env = do(t, g, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
	require.Equal(t, 0, env.TotalRecipes)

	code, env = do(t, g, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), "")
	require.Equal(t, http.StatusNotFound, code)
	require.False(t, env.Success)
	require.Equal(t, msgNotFound, env.Error)
}

func TestRecipeHandler_BadRequests(t *testing.T) {
	g := setup(t)

	code, env := do(t, g, http.MethodPost, "/api/recipes", `{"name":"Борщ","author":"Анна"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Error)

	code, _ = do(t, g, http.MethodPost, "/api/recipes", `{not json`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, g, http.MethodDelete, "/api/recipes/abc", "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestRecipeHandler_StorageFailureIs500(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/recipes.json", []byte("garbage"), 0o644))
	col := store.NewFileCollection[recipe.Recipe](fs, "data", recipe.Collection)
	g := gin.New()
	RegisterRecipeRoutes(g, service.New(store.Guard[recipe.Recipe](col), record.NewClock(time.UTC)))

	code, env := do(t, g, http.MethodGet, "/api/recipes", "")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, errLoad, env.Error)

	code, env = do(t, g, http.MethodPost, "/api/recipes",
		`{"name":"a","author":"b","ingredients":"c","instructions":"d"}`)
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, errSave, env.Error)
}
