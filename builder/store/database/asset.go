package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type assetStoreImpl struct {
	db *DB
}

type AssetStore interface {
	Create(ctx context.Context, asset *Asset) error
	// List returns assets joined with their owning repository, newest
	// first. Filters compose with AND; an absent filter adds no predicate.
	List(ctx context.Context, filter AssetFilter, limit, offset int) ([]Asset, error)
	FindByID(ctx context.Context, id int64) (*Asset, error)
}

func NewAssetStoreWithDB(db *DB) AssetStore {
	return &assetStoreImpl{
		db: db,
	}
}

type Asset struct {
	ID          int64       `bun:",pk,autoincrement" json:"id"`
	RepoID      int64       `bun:",notnull" json:"repo_id"`
	Repository  *Repository `bun:"rel:belongs-to,join:repo_id=id" json:"repository,omitempty"`
	Path        string      `bun:",notnull" json:"path"`
	RelPath     string      `bun:",notnull" json:"rel_path"`
	ContentType string      `bun:",nullzero" json:"content_type"`
	Size        int64       `json:"size"`
	Sha         string      `bun:",nullzero" json:"sha"`
	Ref         string      `bun:",nullzero" json:"ref"`
	URL         string      `bun:",nullzero" json:"url"`
	StoredPath  string      `json:"stored_path"`
	CreatedAt   time.Time   `bun:",nullzero,notnull,skipupdate,default:current_timestamp" json:"created_at"`
	Metadata    string      `bun:",nullzero" json:"metadata,omitempty"`
}

// AssetFilter narrows an asset listing. Owner and Name apply only when
// HasRepo is set, so an empty owner is still a valid exact-match filter.
type AssetFilter struct {
	HasRepo   bool
	Owner     string
	Name      string
	Extension string
	Search    string
}

func (s *assetStoreImpl) Create(ctx context.Context, asset *Asset) error {
	res, err := s.db.Core.NewInsert().
		Model(asset).
		Exec(ctx)
	if err := assertAffectedOneRow(res, err); err != nil {
		return fmt.Errorf("creating asset %s: %w", asset.Path, err)
	}
	return nil
}

func applyAssetFilter(query *bun.SelectQuery, filter AssetFilter) *bun.SelectQuery {
	if filter.HasRepo {
		query = query.Where("repository.owner = ? AND repository.name = ?", filter.Owner, filter.Name)
	}
	if filter.Extension != "" {
		query = query.Where("asset.path LIKE ?", "%."+filter.Extension)
	}
	if filter.Search != "" {
		query = query.Where("asset.path LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (s *assetStoreImpl) List(ctx context.Context, filter AssetFilter, limit, offset int) ([]Asset, error) {
	var assets []Asset
	query := s.db.Core.NewSelect().
		Model(&assets).
		Relation("Repository")
	query = applyAssetFilter(query, filter)
	// id breaks created_at ties so pages never overlap
	err := query.
		Order("asset.created_at DESC", "asset.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *assetStoreImpl) FindByID(ctx context.Context, id int64) (*Asset, error) {
	var asset Asset
	err := s.db.Core.NewSelect().
		Model(&asset).
		Relation("Repository").
		Where("asset.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
