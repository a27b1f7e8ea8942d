package component

import (
	"context"
	"fmt"

	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/types"
)

// DefaultAssetPageSize caps an unpaginated /assets listing.
const DefaultAssetPageSize = 100

type catalogComponentImpl struct {
	repoStore       database.RepoStore
	assetStore      database.AssetStore
	moduleStore     database.ModuleStore
	moduleFileStore database.ModuleFileStore
}

// CatalogComponent is the read-only query surface over one open store
// handle. It never writes.
type CatalogComponent interface {
	Repos(ctx context.Context) ([]types.RepoRes, error)
	Assets(ctx context.Context, req types.ListAssetsReq) ([]types.AssetRes, error)
	Asset(ctx context.Context, id int64) (*types.AssetRes, error)
	Modules(ctx context.Context, repo string) ([]types.ModuleRes, error)
	ModuleFiles(ctx context.Context, moduleID int64) ([]types.ModuleFileRes, error)
}

func NewCatalogComponent(db *database.DB) CatalogComponent {
	return &catalogComponentImpl{
		repoStore:       database.NewRepoStoreWithDB(db),
		assetStore:      database.NewAssetStoreWithDB(db),
		moduleStore:     database.NewModuleStoreWithDB(db),
		moduleFileStore: database.NewModuleFileStoreWithDB(db),
	}
}

func (c *catalogComponentImpl) Repos(ctx context.Context) ([]types.RepoRes, error) {
	repos, err := c.repoStore.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}
	res := make([]types.RepoRes, 0, len(repos))
	for _, repo := range repos {
		res = append(res, types.RepoRes{
			ID:            repo.ID,
			Owner:         repo.Owner,
			Name:          repo.Name,
			DefaultBranch: repo.DefaultBranch,
		})
	}
	return res, nil
}

func (c *catalogComponentImpl) Assets(ctx context.Context, req types.ListAssetsReq) ([]types.AssetRes, error) {
	filter := database.AssetFilter{
		Extension: req.Extension,
		Search:    req.Search,
	}
	if req.Repo != "" {
		filter.HasRepo = true
		filter.Owner, filter.Name = types.SplitOwnerRepo(req.Repo)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultAssetPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	assets, err := c.assetStore.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	res := make([]types.AssetRes, 0, len(assets))
	for i := range assets {
		res = append(res, assetRes(&assets[i]))
	}
	return res, nil
}

func (c *catalogComponentImpl) Asset(ctx context.Context, id int64) (*types.AssetRes, error) {
	asset, err := c.assetStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := assetRes(asset)
	return &res, nil
}

func (c *catalogComponentImpl) Modules(ctx context.Context, repo string) ([]types.ModuleRes, error) {
	filter := database.ModuleFilter{}
	if repo != "" {
		filter.HasRepo = true
		filter.Owner, filter.Name = types.SplitOwnerRepo(repo)
	}
	modules, err := c.moduleStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	res := make([]types.ModuleRes, 0, len(modules))
	for _, module := range modules {
		res = append(res, types.ModuleRes{
			ID:          module.ID,
			Repo:        ownerRepoString(module.Repository),
			ModuleName:  module.ModuleName,
			GistID:      module.GistID,
			GistURL:     module.GistURL,
			Visibility:  module.Visibility,
			Description: module.Description,
			CreatedAt:   module.CreatedAt,
		})
	}
	return res, nil
}

func (c *catalogComponentImpl) ModuleFiles(ctx context.Context, moduleID int64) ([]types.ModuleFileRes, error) {
	files, err := c.moduleFileStore.ByModuleID(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("listing module files: %w", err)
	}
	res := make([]types.ModuleFileRes, 0, len(files))
	for _, file := range files {
		res = append(res, types.ModuleFileRes{
			Filename: file.Filename,
			RawURL:   file.RawURL,
		})
	}
	return res, nil
}

func assetRes(asset *database.Asset) types.AssetRes {
	res := types.AssetRes{
		ID:          asset.ID,
		Repo:        ownerRepoString(asset.Repository),
		Path:        asset.Path,
		RelPath:     asset.RelPath,
		ContentType: asset.ContentType,
		Size:        asset.Size,
		Sha:         asset.Sha,
		Ref:         asset.Ref,
		URL:         asset.URL,
		StoredPath:  asset.StoredPath,
		CreatedAt:   asset.CreatedAt,
	}
	if asset.Metadata != "" {
		res.Metadata = []byte(asset.Metadata)
	}
	return res
}

func ownerRepoString(repo *database.Repository) string {
	if repo == nil {
		return ""
	}
	return repo.Owner + "/" + repo.Name
}
