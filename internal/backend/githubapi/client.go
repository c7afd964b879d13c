// Package githubapi wraps the Git-hosting REST API used as the direct
// (uncached) backend under comparison.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v58/github"
	"github.com/probelabs/propbench/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client is a thin typed wrapper around the REST API. Every call is bounded
// by the configured per-request timeout so a backend that never settles
// cannot stall a scenario indefinitely.
type Client struct {
	gh      *github.Client
	owner   string
	repo    string
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a client for the configured repository. An empty token yields
// an unauthenticated client; read-only scenarios can still run with it.
func New(log logrus.FieldLogger, cfg *config.Config) *Client {
	httpClient := http.DefaultClient
	if cfg.GitHubToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		gh:      github.NewClient(httpClient),
		owner:   cfg.GitHubOwner,
		repo:    cfg.GitHubRepo,
		timeout: timeout,
		log:     log.WithField("component", "github_client"),
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// FileContent reads the decoded content of a file at the given ref.
func (c *Client) FileContent(ctx context.Context, path, ref string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fc, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("getting contents of %s@%s: %w", path, ref, err)
	}

	if fc == nil {
		return "", fmt.Errorf("path %s@%s is a directory, not a file", path, ref)
	}

	content, err := fc.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding contents of %s@%s: %w", path, ref, err)
	}

	return content, nil
}

// BranchHead returns the commit SHA a branch currently points at.
func (c *Client) BranchHead(ctx context.Context, branch string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ref, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+branch)
	if err != nil {
		return "", fmt.Errorf("getting ref for branch %s: %w", branch, err)
	}

	return ref.GetObject().GetSHA(), nil
}

// CreateBranch creates a new branch pointing at fromSHA.
func (c *Client) CreateBranch(ctx context.Context, name, fromSHA string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, _, err := c.gh.Git.CreateRef(ctx, c.owner, c.repo, &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.String(fromSHA)},
	})
	if err != nil {
		return fmt.Errorf("creating branch %s: %w", name, err)
	}

	return nil
}

// DeleteBranch deletes a branch ref.
func (c *Client) DeleteBranch(ctx context.Context, name string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.gh.Git.DeleteRef(ctx, c.owner, c.repo, "refs/heads/"+name); err != nil {
		return fmt.Errorf("deleting branch %s: %w", name, err)
	}

	return nil
}

// BranchExists reports whether a branch ref is currently visible.
func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "refs/heads/"+name)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking branch %s: %w", name, err)
	}

	return true, nil
}

// CommitFile creates a file on a branch and returns the resulting commit SHA.
func (c *Client) CommitFile(ctx context.Context, branch, path, content, message string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, _, err := c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path,
		&github.RepositoryContentFileOptions{
			Message: github.String(message),
			Content: []byte(content),
			Branch:  github.String(branch),
		})
	if err != nil {
		return "", fmt.Errorf("creating file %s on %s: %w", path, branch, err)
	}

	return resp.Commit.GetSHA(), nil
}

// DeleteFile removes a file from a branch.
func (c *Client) DeleteFile(ctx context.Context, branch, path, message string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	// The REST API requires the current blob SHA for deletion.
	fc, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return fmt.Errorf("resolving %s on %s for deletion: %w", path, branch, err)
	}

	if fc == nil {
		return fmt.Errorf("path %s on %s is a directory, not a file", path, branch)
	}

	_, _, err = c.gh.Repositories.DeleteFile(ctx, c.owner, c.repo, path,
		&github.RepositoryContentFileOptions{
			Message: github.String(message),
			SHA:     github.String(fc.GetSHA()),
			Branch:  github.String(branch),
		})
	if err != nil {
		return fmt.Errorf("deleting file %s on %s: %w", path, branch, err)
	}

	return nil
}

// CommitVisible reports whether a commit SHA is currently observable.
func (c *Client) CommitVisible(ctx context.Context, sha string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, _, err := c.gh.Repositories.GetCommit(ctx, c.owner, c.repo, sha, nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking commit %s: %w", sha, err)
	}

	return true, nil
}

// ListBranches returns the names of all branches in the repository.
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	branches, _, err := c.gh.Repositories.ListBranches(ctx, c.owner, c.repo,
		&github.BranchListOptions{ListOptions: github.ListOptions{PerPage: 100}})
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.GetName())
	}

	return names, nil
}

// ListCommits returns the SHAs of recent commits on a branch.
func (c *Client) ListCommits(ctx context.Context, branch string) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	commits, _, err := c.gh.Repositories.ListCommits(ctx, c.owner, c.repo,
		&github.CommitsListOptions{
			SHA:         branch,
			ListOptions: github.ListOptions{PerPage: 30},
		})
	if err != nil {
		return nil, fmt.Errorf("listing commits on %s: %w", branch, err)
	}

	shas := make([]string, 0, len(commits))
	for _, commit := range commits {
		shas = append(shas, commit.GetSHA())
	}

	return shas, nil
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
	}

	return false
}
