package usecase

import "context"

// CommandHandler defines the interface for messenger CLI commands
type CommandHandler interface {
	// CanHandle determines if this handler runs the named command
	CanHandle(name string) bool

	// Run executes the command with its remaining arguments
	Run(ctx context.Context, args []string) error
}

// CommandRouter routes command names to handlers
type CommandRouter interface {
	// Register registers a handler
	Register(handler CommandHandler)

	// GetHandler returns the handler for a command name, or nil
	GetHandler(name string) CommandHandler
}
