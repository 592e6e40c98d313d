package router

import (
	"fmt"

	"messenger-client/internal/usecase"
	"messenger-client/pkg/logger"
)

// CommandRouter routes command names to the first handler accepting them
type CommandRouter struct {
	handlers []usecase.CommandHandler
	logger   logger.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(logger logger.Logger) *CommandRouter {
	return &CommandRouter{
		handlers: make([]usecase.CommandHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler. Handlers are consulted in registration order.
func (r *CommandRouter) Register(handler usecase.CommandHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Debug("Registered handler", "handler", fmt.Sprintf("%T", handler))
}

// GetHandler returns the appropriate handler for a command name
func (r *CommandRouter) GetHandler(name string) usecase.CommandHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(name) {
			return handler
		}
	}
	return nil
}
