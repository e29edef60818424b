package story

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/viccon/sturdyc"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const (
	// VersionDraft requests working content; every draft read is cache-busted.
	VersionDraft = "draft"
	// VersionPublished requests live content; reads may be served from the
	// bounded in-process cache.
	VersionPublished = "published"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultCacheTTL      = 30 * time.Minute
	cacheCapacity        = 512
	cacheShards          = 8
	cacheEvictionPercent = 10
)

// Client reads records from the content store delivery API. It owns the
// read-scope credential only; provisioning uses ManagementClient.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	timeout time.Duration
	logger  interfaces.Logger
	cache   *sturdyc.Client[*Story]
	cv      atomic.Int64
}

// ClientOption mutates the Client configuration.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, primarily for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout bounds each request. Zero disables the per-request deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger injects the client logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPublishedCacheTTL bounds how long published reads may be served from
// memory. Zero disables published caching entirely.
func WithPublishedCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = sturdyc.New[*Story](cacheCapacity, cacheShards, ttl, cacheEvictionPercent)
	}
}

// NewClient constructs a delivery API client for the given endpoint and
// read-scope token.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
		timeout: defaultTimeout,
		logger:  logging.NoOp(),
		cache:   sturdyc.New[*Story](cacheCapacity, cacheShards, defaultCacheTTL, cacheEvictionPercent),
	}
	c.cv.Store(time.Now().UnixMilli())
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GetStory fetches a record by its path-style slug. Draft requests attach a
// monotonically increasing cache-defeat parameter and bypass the local cache;
// published requests may be served from the bounded TTL cache.
func (c *Client) GetStory(ctx context.Context, slug, version string) (*Story, error) {
	version = normalizeVersion(version)

	if version == VersionPublished && c.cache != nil {
		return c.cache.GetOrFetch(ctx, "slug/"+slug, func(ctx context.Context) (*Story, error) {
			return c.fetchBySlug(ctx, slug, version)
		})
	}
	return c.fetchBySlug(ctx, slug, version)
}

// GetStoryByUUID fetches a record by its stable UUID.
func (c *Client) GetStoryByUUID(ctx context.Context, id uuid.UUID, version string) (*Story, error) {
	version = normalizeVersion(version)

	if version == VersionPublished && c.cache != nil {
		return c.cache.GetOrFetch(ctx, "uuid/"+id.String(), func(ctx context.Context) (*Story, error) {
			return c.fetchByUUID(ctx, id, version)
		})
	}
	return c.fetchByUUID(ctx, id, version)
}

// GetStoriesByUUIDs resolves a batch of UUIDs concurrently. Failures are
// isolated per item: one record failing to load never cancels its siblings.
// Callers inspect the error map to decide between fully and partially
// degraded rendering.
func (c *Client) GetStoriesByUUIDs(ctx context.Context, ids []uuid.UUID, version string) (map[uuid.UUID]*Story, map[uuid.UUID]error) {
	stories := make(map[uuid.UUID]*Story, len(ids))
	failures := make(map[uuid.UUID]error)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			record, err := c.GetStoryByUUID(ctx, id, version)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[id] = err
				return
			}
			stories[id] = record
		}(id)
	}
	wg.Wait()

	if len(failures) > 0 {
		c.logger.Warn("story.batch.partial", "requested", len(ids), "failed", len(failures))
	}
	return stories, failures
}

// ListStories lists records under a path prefix, e.g. the wedding folder.
// Listings back interactive link matching and are never served from the
// cache; draft listings are cache-busted like every draft read.
func (c *Client) ListStories(ctx context.Context, prefix, version string) ([]*Story, error) {
	version = normalizeVersion(version)

	query := url.Values{}
	query.Set("token", c.token)
	query.Set("version", version)
	query.Set("per_page", "100")
	if trimmed := strings.Trim(prefix, "/"); trimmed != "" {
		query.Set("starts_with", trimmed+"/")
	}
	if version == VersionDraft {
		query.Set("cv", strconv.FormatInt(c.cv.Add(1), 10))
	}

	endpoint := fmt.Sprintf("%s/content/stories?%s", c.baseURL, query.Encode())

	var envelope storiesEnvelope
	if err := c.getJSON(ctx, endpoint, prefix, version, &envelope); err != nil {
		return nil, err
	}
	return envelope.Stories, nil
}

func (c *Client) fetchBySlug(ctx context.Context, slug, version string) (*Story, error) {
	query := url.Values{}
	query.Set("token", c.token)
	query.Set("version", version)
	if version == VersionDraft {
		query.Set("cv", strconv.FormatInt(c.cv.Add(1), 10))
	}

	endpoint := fmt.Sprintf("%s/content/stories/%s?%s", c.baseURL, url.PathEscape(slug), query.Encode())

	var envelope storyEnvelope
	if err := c.getJSON(ctx, endpoint, slug, version, &envelope); err != nil {
		return nil, err
	}
	if envelope.Story == nil {
		return nil, &NotFoundError{Identifier: slug, Version: version}
	}
	return envelope.Story, nil
}

func (c *Client) fetchByUUID(ctx context.Context, id uuid.UUID, version string) (*Story, error) {
	query := url.Values{}
	query.Set("token", c.token)
	query.Set("version", version)
	query.Set("find_by", "uuid")
	query.Set("by_uuids", id.String())
	if version == VersionDraft {
		query.Set("cv", strconv.FormatInt(c.cv.Add(1), 10))
	}

	endpoint := fmt.Sprintf("%s/content/stories?%s", c.baseURL, query.Encode())

	var envelope storiesEnvelope
	if err := c.getJSON(ctx, endpoint, id.String(), version, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Stories) == 0 || envelope.Stories[0] == nil {
		return nil, &NotFoundError{Identifier: id.String(), Version: version}
	}
	return envelope.Stories[0], nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, identifier, version string, target any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &UpstreamError{Cause: err}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := classifyStatus(res.StatusCode, identifier, version)
		if _, ok := err.(*UnauthorizedError); ok {
			c.logger.Error("story.fetch.unauthorized", "status", res.StatusCode)
		} else {
			c.logger.Debug("story.fetch.failed", "identifier", identifier, "status", res.StatusCode)
		}
		return err
	}

	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return &UpstreamError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func normalizeVersion(version string) string {
	if version == VersionDraft {
		return VersionDraft
	}
	return VersionPublished
}
