package database

import (
	"context"
	"fmt"
	"time"
)

type moduleStoreImpl struct {
	db *DB
}

type ModuleStore interface {
	Create(ctx context.Context, module *Module) error
	// List returns modules joined with their owning repository, newest
	// first, optionally restricted to one (owner, name).
	List(ctx context.Context, filter ModuleFilter) ([]Module, error)
}

func NewModuleStoreWithDB(db *DB) ModuleStore {
	return &moduleStoreImpl{
		db: db,
	}
}

type Module struct {
	ID          int64       `bun:",pk,autoincrement" json:"id"`
	RepoID      int64       `bun:",notnull" json:"repo_id"`
	Repository  *Repository `bun:"rel:belongs-to,join:repo_id=id" json:"repository,omitempty"`
	ModuleName  string      `bun:",notnull" json:"module_name"`
	GistID      string      `json:"gist_id"`
	GistURL     string      `json:"gist_url"`
	Visibility  string      `json:"visibility"`
	Description string      `bun:",nullzero" json:"description"`
	CreatedAt   time.Time   `bun:",nullzero,notnull,skipupdate,default:current_timestamp" json:"created_at"`
}

type ModuleFilter struct {
	HasRepo bool
	Owner   string
	Name    string
}

func (s *moduleStoreImpl) Create(ctx context.Context, module *Module) error {
	res, err := s.db.Core.NewInsert().
		Model(module).
		Exec(ctx)
	if err := assertAffectedOneRow(res, err); err != nil {
		return fmt.Errorf("creating module %s: %w", module.ModuleName, err)
	}
	return nil
}

func (s *moduleStoreImpl) List(ctx context.Context, filter ModuleFilter) ([]Module, error) {
	var modules []Module
	query := s.db.Core.NewSelect().
		Model(&modules).
		Relation("Repository")
	if filter.HasRepo {
		query = query.Where("repository.owner = ? AND repository.name = ?", filter.Owner, filter.Name)
	}
	err := query.
		Order("module.created_at DESC", "module.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return modules, nil
}

type moduleFileStoreImpl struct {
	db *DB
}

type ModuleFileStore interface {
	BatchCreate(ctx context.Context, files []ModuleFile) error
	// ByModuleID returns the files of a module in storage order. An unknown
	// module id yields an empty slice, not an error.
	ByModuleID(ctx context.Context, moduleID int64) ([]ModuleFile, error)
}

func NewModuleFileStoreWithDB(db *DB) ModuleFileStore {
	return &moduleFileStoreImpl{
		db: db,
	}
}

type ModuleFile struct {
	ID       int64   `bun:",pk,autoincrement" json:"id"`
	ModuleID int64   `bun:",notnull" json:"module_id"`
	Module   *Module `bun:"rel:belongs-to,join:module_id=id" json:"module,omitempty"`
	Filename string  `bun:",notnull" json:"filename"`
	RawURL   string  `json:"raw_url"`
}

func (s *moduleFileStoreImpl) BatchCreate(ctx context.Context, files []ModuleFile) error {
	if len(files) == 0 {
		return nil
	}
	result, err := s.db.Core.NewInsert().
		Model(&files).
		Exec(ctx)
	return assertAffectedXRows(int64(len(files)), result, err)
}

func (s *moduleFileStoreImpl) ByModuleID(ctx context.Context, moduleID int64) ([]ModuleFile, error) {
	var files []ModuleFile
	err := s.db.Core.NewSelect().
		Model(&files).
		Where("module_id = ?", moduleID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return files, nil
}
