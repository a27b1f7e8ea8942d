package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/samw425-glitch/gist-ghost-sync/api/router"
	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
	"github.com/samw425-glitch/gist-ghost-sync/common/tests"
	"github.com/samw425-glitch/gist-ghost-sync/common/types"
)

// seedStore fills a fresh store file and returns its path together with the
// ids of the seeded asset and module.
func seedStore(t *testing.T) (path string, assetID, moduleID int64) {
	t.Helper()
	ctx := context.Background()
	db, path := tests.CreateTestStore(t)

	rs := database.NewRepoStoreWithDB(db)
	as := database.NewAssetStoreWithDB(db)
	ms := database.NewModuleStoreWithDB(db)
	fs := database.NewModuleFileStoreWithDB(db)

	repo, err := rs.Upsert(ctx, "acme", "widgets", "main")
	require.NoError(t, err)
	other, err := rs.Upsert(ctx, "globex", "gears", "dev")
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	asset := &database.Asset{
		RepoID: repo.ID, Path: "src/a.py", RelPath: "a.py", StoredPath: "a.py",
		Size: 120, Sha: "abc1", Ref: "main", URL: "https://github.test/acme/widgets/a.py",
		CreatedAt: base,
	}
	require.NoError(t, as.Create(ctx, asset))
	require.NoError(t, as.Create(ctx, &database.Asset{
		RepoID: other.ID, Path: "lib/c.go", RelPath: "c.go", StoredPath: "c.go",
		Size: 7, CreatedAt: base.Add(time.Minute),
	}))

	module := &database.Module{
		RepoID: repo.ID, ModuleName: "widget-utils", GistID: "g1",
		GistURL: "https://gist.test/g1", Visibility: "public",
	}
	require.NoError(t, ms.Create(ctx, module))
	require.NoError(t, fs.BatchCreate(ctx, []database.ModuleFile{
		{ModuleID: module.ID, Filename: "utils.py", RawURL: "https://gist.test/raw/utils.py"},
	}))

	return path, asset.ID, module.ID
}

func newTestServer(t *testing.T, storePath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Database.Driver = string(database.DialectSQLite)
	cfg.Database.Path = storePath
	r, err := router.NewRouter(cfg)
	require.NoError(t, err)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestServer(t, "unused")
	w := doGet(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRepos(t *testing.T) {
	path, _, _ := seedStore(t)
	r := newTestServer(t, path)

	w := doGet(t, r, "/repos")
	require.Equal(t, http.StatusOK, w.Code)

	var repos []types.RepoRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &repos))
	require.Len(t, repos, 2)
	require.Equal(t, "acme", repos[0].Owner)
	require.Equal(t, "globex", repos[1].Owner)
}

func TestAssetsFilters(t *testing.T) {
	path, _, _ := seedStore(t)
	r := newTestServer(t, path)

	w := doGet(t, r, "/assets?repo=acme/widgets&ext=py")
	require.Equal(t, http.StatusOK, w.Code)
	var assets []types.AssetRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	require.Equal(t, "acme/widgets", assets[0].Repo)
	require.Equal(t, "src/a.py", assets[0].Path)
	require.Equal(t, int64(120), assets[0].Size)

	w = doGet(t, r, "/assets")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets, 2)
	// newest first
	require.Equal(t, "lib/c.go", assets[0].Path)

	w = doGet(t, r, "/assets?q=nomatch")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestAssetsPaginationParams(t *testing.T) {
	path, _, _ := seedStore(t)
	r := newTestServer(t, path)

	w := doGet(t, r, "/assets?limit=1&offset=1")
	require.Equal(t, http.StatusOK, w.Code)
	var assets []types.AssetRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	require.Equal(t, "src/a.py", assets[0].Path)

	w = doGet(t, r, "/assets?limit=bogus")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssetShow(t *testing.T) {
	path, assetID, _ := seedStore(t)
	r := newTestServer(t, path)

	w := doGet(t, r, "/assets/"+itoa(assetID))
	require.Equal(t, http.StatusOK, w.Code)
	var asset types.AssetRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asset))
	require.Equal(t, "src/a.py", asset.Path)
	require.Equal(t, "acme/widgets", asset.Repo)

	w = doGet(t, r, "/assets/999999")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "asset not found")

	w = doGet(t, r, "/assets/abc")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModulesAndFiles(t *testing.T) {
	path, _, moduleID := seedStore(t)
	r := newTestServer(t, path)

	w := doGet(t, r, "/modules?repo=acme/widgets")
	require.Equal(t, http.StatusOK, w.Code)
	var modules []types.ModuleRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modules))
	require.Len(t, modules, 1)
	require.Equal(t, "widget-utils", modules[0].ModuleName)
	require.Equal(t, "acme/widgets", modules[0].Repo)

	w = doGet(t, r, "/modules/"+itoa(moduleID)+"/files")
	require.Equal(t, http.StatusOK, w.Code)
	var files []types.ModuleFileRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)
	require.Equal(t, "utils.py", files[0].Filename)

	// unknown module yields an empty array, not an error
	w = doGet(t, r, "/modules/999999/files")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestMissingStoreIs500WithPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.sqlite")
	r := newTestServer(t, missing)

	w := doGet(t, r, "/repos")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), missing)
}

func TestDBQueryOverride(t *testing.T) {
	path, _, _ := seedStore(t)
	// configured default does not exist, the override must win
	r := newTestServer(t, filepath.Join(t.TempDir(), "nope.sqlite"))

	w := doGet(t, r, "/repos?db="+path)
	require.Equal(t, http.StatusOK, w.Code)
	var repos []types.RepoRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &repos))
	require.Len(t, repos, 2)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
