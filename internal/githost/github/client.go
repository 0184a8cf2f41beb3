// Package github implements the githost interfaces against the GitHub REST API.
package github

import (
	"context"
	"fmt"

	"release-promoter/internal/githost"

	gh "github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// Client wraps an authenticated GitHub API client.
type Client struct {
	api *gh.Client
	log *zap.SugaredLogger
}

var _ githost.Host = (*Client)(nil)

// New creates a GitHub host client for the given token.
func New(token string, log *zap.SugaredLogger) *Client {
	return &Client{
		api: gh.NewClient(nil).WithAuthToken(token),
		log: log,
	}
}

// GetRepository verifies the repository exists and returns a handle for it.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (githost.Repository, error) {
	if _, _, err := c.api.Repositories.Get(ctx, owner, name); err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, name, err)
	}
	return &repository{api: c.api, log: c.log, owner: owner, name: name}, nil
}
