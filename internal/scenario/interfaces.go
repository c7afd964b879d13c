// Package scenario implements the evaluation scenarios as ordered pipelines
// of numbered steps with explicit inputs and outputs.
package scenario

import "context"

// GitBackend is the direct Git-hosting REST API under comparison.
type GitBackend interface {
	FileContent(ctx context.Context, path, ref string) (string, error)
	BranchHead(ctx context.Context, branch string) (string, error)
	CreateBranch(ctx context.Context, name, fromSHA string) error
	DeleteBranch(ctx context.Context, name string) error
	BranchExists(ctx context.Context, name string) (bool, error)
	CommitFile(ctx context.Context, branch, path, content, message string) (string, error)
	DeleteFile(ctx context.Context, branch, path, message string) error
	CommitVisible(ctx context.Context, sha string) (bool, error)
	ListBranches(ctx context.Context) ([]string, error)
	ListCommits(ctx context.Context, branch string) ([]string, error)
}

// ContentBackend is the caching content layer under evaluation.
type ContentBackend interface {
	FetchContent(ctx context.Context, path string) (string, error)
	Query(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error
}
