package provision

import (
	"context"

	"github.com/rumriverbarn/venuesite/internal/story"
)

// ManagementAPI is the slice of the management client the provisioning
// commands drive. The concrete implementation is story.ManagementClient.
type ManagementAPI interface {
	ListComponents(ctx context.Context) ([]*story.Component, error)
	CreateComponent(ctx context.Context, component story.Component) (*story.Component, error)
	UpdateComponent(ctx context.Context, id int64, component story.Component) error
	ListStories(ctx context.Context, opts story.ListStoriesOptions) ([]*story.Story, error)
	GetStory(ctx context.Context, id int64) (*story.Story, error)
	CreateStory(ctx context.Context, record story.Story, publish bool) (*story.Story, error)
	UpdateStory(ctx context.Context, id int64, content story.Block, publish bool) error
	PublishStory(ctx context.Context, id int64) error
}

var _ ManagementAPI = (*story.ManagementClient)(nil)
