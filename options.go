package mcplite

import (
	"log/slog"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	strict bool
	logger *slog.Logger
}

// WithStrictValidation compiles every tool schema at registration and rejects tools/call
// arguments that do not satisfy it (-32602). Without it, only the presence of required
// arguments is checked and values pass through untouched.
func WithStrictValidation() RegistryOption {
	return func(o *registryOptions) {
		o.strict = true
	}
}

// WithRegistryLogger sets the logger used to report registrations.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	name         string
	version      string
	instructions string
	logger       *slog.Logger
	onToolError  func(*ToolError)
}

// WithServerInfo sets the server name and version reported by initialize.
func WithServerInfo(name, version string) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.name = name
		o.version = version
	}
}

// WithInstructions sets the optional instructions string reported by initialize.
func WithInstructions(text string) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.instructions = text
	}
}

// WithLogger sets the request logger. Pass a logger over slog.DiscardHandler to silence it.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.logger = logger
	}
}

// WithOnToolError sets a hook called for every tool error before it is reported to the client.
func WithOnToolError(fn func(*ToolError)) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.onToolError = fn
	}
}
