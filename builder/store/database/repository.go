package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type repoStoreImpl struct {
	db *DB
}

type RepoStore interface {
	// Upsert inserts a repository or, when (owner, name) already exists,
	// updates its default branch to the given value. Last write wins, even
	// for an empty branch. The conflict is resolved by the database, so
	// concurrent callers for the same key are safe.
	Upsert(ctx context.Context, owner, name, defaultBranch string) (*Repository, error)
	Index(ctx context.Context) ([]Repository, error)
	FindByOwnerName(ctx context.Context, owner, name string) (*Repository, error)
}

func NewRepoStoreWithDB(db *DB) RepoStore {
	return &repoStoreImpl{
		db: db,
	}
}

type Repository struct {
	bun.BaseModel `bun:"table:repos,alias:repository"`

	ID            int64  `bun:",pk,autoincrement" json:"id"`
	Owner         string `bun:",notnull,unique:repos_owner_name" json:"owner"`
	Name          string `bun:",notnull,unique:repos_owner_name" json:"name"`
	DefaultBranch string `bun:",nullzero" json:"default_branch"`
}

// UpsertRepository performs the atomic (owner, name) upsert on the given
// bun handle, which may be a transaction. Returns the repository id.
func UpsertRepository(ctx context.Context, idb bun.IDB, owner, name, defaultBranch string) (int64, error) {
	repo := &Repository{
		Owner:         owner,
		Name:          name,
		DefaultBranch: defaultBranch,
	}
	_, err := idb.NewInsert().
		Model(repo).
		On("CONFLICT (owner, name) DO UPDATE").
		Set("default_branch = EXCLUDED.default_branch").
		Returning("id").
		Exec(ctx, repo)
	if err != nil {
		return 0, fmt.Errorf("upserting repository %s/%s: %w", owner, name, err)
	}
	return repo.ID, nil
}

func (s *repoStoreImpl) Upsert(ctx context.Context, owner, name, defaultBranch string) (*Repository, error) {
	id, err := UpsertRepository(ctx, s.db.Core, owner, name, defaultBranch)
	if err != nil {
		return nil, err
	}
	return s.findByID(ctx, id)
}

func (s *repoStoreImpl) Index(ctx context.Context) ([]Repository, error) {
	var repos []Repository
	err := s.db.Core.NewSelect().
		Model(&repos).
		Order("owner ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (s *repoStoreImpl) FindByOwnerName(ctx context.Context, owner, name string) (*Repository, error) {
	var repo Repository
	err := s.db.Core.NewSelect().
		Model(&repo).
		Where("owner = ? AND name = ?", owner, name).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

func (s *repoStoreImpl) findByID(ctx context.Context, id int64) (*Repository, error) {
	var repo Repository
	err := s.db.Core.NewSelect().
		Model(&repo).
		Where("repository.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &repo, nil
}
