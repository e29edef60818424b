package logging

import (
	"context"

	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const (
	rootModule      = "site"
	storyModule     = "site.story"
	resolverModule  = "site.resolver"
	linkerModule    = "site.linker"
	previewModule   = "site.preview"
	renderModule    = "site.render"
	httpModule      = "site.http"
	provisionModule = "site.provision"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoryLogger returns the logger namespace reserved for the content store client.
func StoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storyModule)
}

// ResolverLogger returns the logger namespace reserved for field resolution.
func ResolverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolverModule)
}

// LinkerLogger returns the logger namespace reserved for cross-record linking.
func LinkerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linkerModule)
}

// PreviewLogger returns the logger namespace reserved for the live preview bridge.
func PreviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, previewModule)
}

// RenderLogger returns the logger namespace reserved for section rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// ProvisionLogger returns the logger namespace reserved for provisioning commands.
func ProvisionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, provisionModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
