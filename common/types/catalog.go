package types

import (
	"encoding/json"
	"strings"
	"time"
)

// AssetDescriptor is one entry of the primary catalog document produced by
// the content collector.
type AssetDescriptor struct {
	OwnerRepo   string          `json:"ownerRepo"`
	Path        string          `json:"path"`
	RelPath     string          `json:"rel_path"`
	ContentType string          `json:"content_type"`
	Size        any             `json:"size"`
	Sha         string          `json:"sha"`
	Branch      string          `json:"branch"`
	URL         string          `json:"url"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// ModuleDescriptor is one entry of the optional modules (gist index)
// document. The collector emitted the repository key as both "ownerRepo"
// and "owner_repo" over time, so both spellings are accepted.
type ModuleDescriptor struct {
	OwnerRepo   string
	Branch      string
	Module      string
	GistID      string
	GistURL     string
	Visibility  string
	Description string
	Files       []ModuleFileDescriptor
}

func (d *ModuleDescriptor) UnmarshalJSON(data []byte) error {
	var raw struct {
		OwnerRepo      string                 `json:"ownerRepo"`
		OwnerRepoSnake string                 `json:"owner_repo"`
		Branch         string                 `json:"branch"`
		Module         string                 `json:"module"`
		GistID         string                 `json:"gist_id"`
		GistURL        string                 `json:"gist_url"`
		Visibility     string                 `json:"visibility"`
		Description    string                 `json:"description"`
		Files          []ModuleFileDescriptor `json:"files"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.OwnerRepo = raw.OwnerRepo
	if d.OwnerRepo == "" {
		d.OwnerRepo = raw.OwnerRepoSnake
	}
	d.Branch = raw.Branch
	d.Module = raw.Module
	d.GistID = raw.GistID
	d.GistURL = raw.GistURL
	d.Visibility = raw.Visibility
	d.Description = raw.Description
	d.Files = raw.Files
	return nil
}

type ModuleFileDescriptor struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}

// SplitOwnerRepo splits an "owner/name" string on the first slash. A string
// without a slash is treated as a bare repository name with an empty owner.
func SplitOwnerRepo(ownerRepo string) (owner, name string) {
	if idx := strings.Index(ownerRepo, "/"); idx >= 0 {
		return ownerRepo[:idx], ownerRepo[idx+1:]
	}
	return "", ownerRepo
}

type RepoRes struct {
	ID            int64  `json:"id"`
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch"`
}

type AssetRes struct {
	ID          int64           `json:"id"`
	Repo        string          `json:"repo"`
	Path        string          `json:"path"`
	RelPath     string          `json:"rel_path"`
	ContentType string          `json:"content_type"`
	Size        int64           `json:"size"`
	Sha         string          `json:"sha"`
	Ref         string          `json:"ref"`
	URL         string          `json:"url"`
	StoredPath  string          `json:"stored_path"`
	CreatedAt   time.Time       `json:"created_at"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

type ModuleRes struct {
	ID          int64     `json:"id"`
	Repo        string    `json:"repo"`
	ModuleName  string    `json:"module_name"`
	GistID      string    `json:"gist_id"`
	GistURL     string    `json:"gist_url"`
	Visibility  string    `json:"visibility"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ModuleFileRes struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}

// ListAssetsReq carries the /assets query parameters.
type ListAssetsReq struct {
	Repo      string
	Extension string
	Search    string
	Limit     int
	Offset    int
}

// IngestSummary reports what one ingestion run wrote.
type IngestSummary struct {
	Repos       int `json:"repos"`
	Assets      int `json:"assets"`
	Modules     int `json:"modules"`
	ModuleFiles int `json:"module_files"`
}
