package story

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// Component is a content-type schema definition held by the management API.
type Component struct {
	ID          int64          `json:"id,omitempty"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name,omitempty"`
	Schema      map[string]any `json:"schema"`
	IsRoot      bool           `json:"is_root,omitempty"`
	IsNestable  bool           `json:"is_nestable,omitempty"`
}

// ListStoriesOptions filters management story listings.
type ListStoriesOptions struct {
	StartsWith string
	PerPage    int
}

// ManagementClient performs administrative writes against the content store.
// It holds the admin-scope credential; the rendering path never constructs
// one of these.
type ManagementClient struct {
	baseURL string
	token   string
	spaceID string
	http    *http.Client
	timeout time.Duration
	logger  interfaces.Logger
}

// ManagementOption mutates the ManagementClient configuration.
type ManagementOption func(*ManagementClient)

// WithManagementHTTPClient overrides the underlying HTTP client.
func WithManagementHTTPClient(httpClient *http.Client) ManagementOption {
	return func(c *ManagementClient) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithManagementTimeout bounds each management request.
func WithManagementTimeout(timeout time.Duration) ManagementOption {
	return func(c *ManagementClient) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithManagementLogger injects the management client logger.
func WithManagementLogger(logger interfaces.Logger) ManagementOption {
	return func(c *ManagementClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewManagementClient constructs a management API client scoped to one space.
func NewManagementClient(baseURL, token, spaceID string, opts ...ManagementOption) *ManagementClient {
	c := &ManagementClient{
		baseURL: baseURL,
		token:   token,
		spaceID: spaceID,
		http:    &http.Client{},
		timeout: defaultTimeout,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ListComponents returns every component schema registered in the space.
func (c *ManagementClient) ListComponents(ctx context.Context) ([]*Component, error) {
	var envelope struct {
		Components []*Component `json:"components"`
	}
	if err := c.do(ctx, http.MethodGet, "/components", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Components, nil
}

// CreateComponent registers a new component schema.
func (c *ManagementClient) CreateComponent(ctx context.Context, component Component) (*Component, error) {
	payload := map[string]any{"component": component}
	var envelope struct {
		Component *Component `json:"component"`
	}
	if err := c.do(ctx, http.MethodPost, "/components", payload, &envelope); err != nil {
		return nil, err
	}
	c.logger.Info("mgmt.component.created", "name", component.Name)
	return envelope.Component, nil
}

// UpdateComponent replaces an existing component schema.
func (c *ManagementClient) UpdateComponent(ctx context.Context, id int64, component Component) error {
	payload := map[string]any{"component": component}
	if err := c.do(ctx, http.MethodPut, "/components/"+strconv.FormatInt(id, 10), payload, nil); err != nil {
		return err
	}
	c.logger.Info("mgmt.component.updated", "name", component.Name, "id", id)
	return nil
}

// ListStories returns story summaries, optionally filtered by slug prefix.
// Content bodies are not included; use GetStory for the full record.
func (c *ManagementClient) ListStories(ctx context.Context, opts ListStoriesOptions) ([]*Story, error) {
	query := url.Values{}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 100
	}
	query.Set("per_page", strconv.Itoa(perPage))
	if opts.StartsWith != "" {
		query.Set("starts_with", opts.StartsWith)
	}

	var envelope storiesEnvelope
	if err := c.do(ctx, http.MethodGet, "/stories?"+query.Encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Stories, nil
}

// GetStory returns the full managed record, nested content included.
func (c *ManagementClient) GetStory(ctx context.Context, id int64) (*Story, error) {
	var envelope storyEnvelope
	if err := c.do(ctx, http.MethodGet, "/stories/"+strconv.FormatInt(id, 10), nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Story == nil {
		return nil, &NotFoundError{Identifier: strconv.FormatInt(id, 10)}
	}
	return envelope.Story, nil
}

// CreateStory creates a new managed record, optionally publishing in the
// same call.
func (c *ManagementClient) CreateStory(ctx context.Context, record Story, publish bool) (*Story, error) {
	payload := map[string]any{"story": record}
	if publish {
		payload["publish"] = 1
	}
	var envelope storyEnvelope
	if err := c.do(ctx, http.MethodPost, "/stories", payload, &envelope); err != nil {
		return nil, err
	}
	created := envelope.Story
	if created == nil {
		created = &record
	}
	c.logger.Info("mgmt.story.created", "slug", record.Slug, "published", publish)
	return created, nil
}

// UpdateStory replaces a story's content tree, optionally publishing in the
// same call.
func (c *ManagementClient) UpdateStory(ctx context.Context, id int64, content Block, publish bool) error {
	payload := map[string]any{
		"story": map[string]any{"content": content},
	}
	if publish {
		payload["publish"] = 1
	}
	if err := c.do(ctx, http.MethodPut, "/stories/"+strconv.FormatInt(id, 10), payload, nil); err != nil {
		return err
	}
	c.logger.Info("mgmt.story.updated", "id", id, "published", publish)
	return nil
}

// PublishStory publishes the story's current draft content.
func (c *ManagementClient) PublishStory(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodPost, "/stories/"+strconv.FormatInt(id, 10)+"/publish", nil, nil); err != nil {
		return err
	}
	c.logger.Info("mgmt.story.published", "id", id)
	return nil
}

func (c *ManagementClient) do(ctx context.Context, method, path string, payload, target any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/v1/spaces/%s%s", c.baseURL, url.PathEscape(c.spaceID), path)

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &UpstreamError{Cause: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &UpstreamError{Cause: err}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := classifyStatus(res.StatusCode, path, "")
		if _, ok := err.(*UnauthorizedError); ok {
			c.logger.Error("mgmt.request.unauthorized", "status", res.StatusCode, "path", path)
		}
		return err
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return &UpstreamError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
