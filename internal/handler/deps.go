package handler

import (
	"connectify/internal/app/assistant"
	"connectify/internal/app/chat"
	"connectify/internal/app/mailer"
	"connectify/internal/app/storage"
	"connectify/internal/app/store"
	"connectify/internal/configs"
)

// AppDeps bundles the collaborators shared by all HTTP handlers.
// Mailer and Assistant are nil when their configuration is absent; the
// corresponding endpoints respond with a service-unavailable error.
type AppDeps struct {
	Config    *configs.AppConfig
	Hub       *chat.Hub
	Pipeline  *chat.Pipeline
	Store     *store.Store
	Storage   storage.StorageService
	Mailer    *mailer.Mailer
	Assistant *assistant.Client
}
