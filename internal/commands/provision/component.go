package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	command "github.com/goliatone/go-command"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rumriverbarn/venuesite/internal/commands"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const createComponentOperation = "provision.create_component"

var _ command.Commander[CreateComponentCommand] = (*CreateComponentHandler)(nil)

// CreateComponentHandler upserts component schemas through the management
// API. The schema is compiled locally first so a malformed definition never
// reaches the content store.
type CreateComponentHandler struct {
	inner *commands.Handler[CreateComponentCommand]
}

// NewCreateComponentHandler binds the handler to a management API.
func NewCreateComponentHandler(api ManagementAPI, logger interfaces.Logger, opts ...commands.HandlerOption[CreateComponentCommand]) *CreateComponentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateComponentCommand) error {
		if err := compileComponentSchema(msg.Schema); err != nil {
			return fmt.Errorf("component %q schema: %w", msg.Name, err)
		}

		component := story.Component{
			Name:        msg.Name,
			DisplayName: msg.DisplayName,
			Schema:      msg.Schema,
			IsRoot:      msg.IsRoot,
			IsNestable:  msg.IsNestable,
		}

		existing, err := api.ListComponents(ctx)
		if err != nil {
			return err
		}
		for _, candidate := range existing {
			if candidate != nil && candidate.Name == msg.Name {
				if err := api.UpdateComponent(ctx, candidate.ID, component); err != nil {
					return err
				}
				baseLogger.Info("provision.component.updated", "name", msg.Name, "id", candidate.ID)
				return nil
			}
		}

		created, err := api.CreateComponent(ctx, component)
		if err != nil {
			return err
		}
		baseLogger.Info("provision.component.created", "name", msg.Name, "id", created.ID)
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[CreateComponentCommand]{
		commands.WithLogger[CreateComponentCommand](baseLogger),
		commands.WithOperation[CreateComponentCommand](createComponentOperation),
		commands.WithMessageFields(func(msg CreateComponentCommand) map[string]any {
			return map[string]any{"component_name": msg.Name}
		}),
	}, opts...)

	return &CreateComponentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *CreateComponentHandler) Execute(ctx context.Context, msg CreateComponentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// compileComponentSchema checks that a schema definition compiles under the
// 2020-12 draft before it is pushed upstream.
func compileComponentSchema(schema map[string]any) error {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return err
	}
	if _, err := compiler.Compile("schema.json"); err != nil {
		return err
	}
	return nil
}
