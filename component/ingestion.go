package component

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/uptrace/bun"

	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
	"github.com/samw425-glitch/gist-ghost-sync/common/types"
)

type ingestionComponentImpl struct {
	db *database.DB
}

type IngestionComponent interface {
	// Run ingests the primary catalog and, when modulesPath names an
	// existing file, the modules catalog, in one transaction. A failure
	// anywhere rolls the whole run back.
	Run(ctx context.Context, catalogPath, modulesPath string) (*types.IngestSummary, error)
}

func NewIngestionComponent(db *database.DB) IngestionComponent {
	return &ingestionComponentImpl{
		db: db,
	}
}

type repoKey struct {
	owner string
	name  string
}

func (c *ingestionComponentImpl) Run(ctx context.Context, catalogPath, modulesPath string) (*types.IngestSummary, error) {
	raw, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", catalogPath, err)
	}
	var assets []types.AssetDescriptor
	if err := json.Unmarshal(raw, &assets); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", catalogPath, err)
	}

	var modules []types.ModuleDescriptor
	if modulesPath != "" {
		raw, err := os.ReadFile(modulesPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, &modules); err != nil {
				return nil, fmt.Errorf("parsing modules file %s: %w", modulesPath, err)
			}
		case os.IsNotExist(err):
			// optional catalog, skip silently
		default:
			return nil, fmt.Errorf("reading modules file %s: %w", modulesPath, err)
		}
	}

	summary := &types.IngestSummary{}
	err = c.db.Core.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// repo ids already resolved in this run, shared across both passes
		cache := make(map[repoKey]int64)

		for _, descriptor := range assets {
			repoID, err := resolveRepo(ctx, tx, cache, summary, descriptor.OwnerRepo, descriptor.Branch)
			if err != nil {
				return err
			}
			size, err := cast.ToInt64E(descriptor.Size)
			if err != nil {
				size = 0
			}
			asset := &database.Asset{
				RepoID:      repoID,
				Path:        descriptor.Path,
				RelPath:     descriptor.RelPath,
				ContentType: descriptor.ContentType,
				Size:        size,
				Sha:         descriptor.Sha,
				Ref:         descriptor.Branch,
				URL:         descriptor.URL,
				StoredPath:  descriptor.RelPath,
			}
			if descriptor.Metadata != nil {
				asset.Metadata = string(descriptor.Metadata)
			}
			if _, err := tx.NewInsert().Model(asset).Exec(ctx); err != nil {
				return fmt.Errorf("inserting asset %s: %w", descriptor.Path, err)
			}
			summary.Assets++
		}

		for _, descriptor := range modules {
			repoID, err := resolveRepo(ctx, tx, cache, summary, descriptor.OwnerRepo, descriptor.Branch)
			if err != nil {
				return err
			}
			module := &database.Module{
				RepoID:      repoID,
				ModuleName:  descriptor.Module,
				GistID:      descriptor.GistID,
				GistURL:     descriptor.GistURL,
				Visibility:  descriptor.Visibility,
				Description: descriptor.Description,
			}
			if _, err := tx.NewInsert().Model(module).Exec(ctx); err != nil {
				return fmt.Errorf("inserting module %s: %w", descriptor.Module, err)
			}
			summary.Modules++

			for _, fd := range descriptor.Files {
				file := &database.ModuleFile{
					ModuleID: module.ID,
					Filename: fd.Filename,
					RawURL:   fd.RawURL,
				}
				if _, err := tx.NewInsert().Model(file).Exec(ctx); err != nil {
					return fmt.Errorf("inserting module file %s: %w", fd.Filename, err)
				}
				summary.ModuleFiles++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func resolveRepo(ctx context.Context, tx bun.Tx, cache map[repoKey]int64, summary *types.IngestSummary, ownerRepo, branch string) (int64, error) {
	owner, name := types.SplitOwnerRepo(ownerRepo)
	key := repoKey{owner: owner, name: name}
	if id, ok := cache[key]; ok {
		return id, nil
	}
	id, err := database.UpsertRepository(ctx, tx, owner, name, branch)
	if err != nil {
		return 0, err
	}
	cache[key] = id
	summary.Repos++
	return id, nil
}
