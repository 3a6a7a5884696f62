package storage

import "mediaforge/internal/ports"

// Provider is the storage contract used across the API and the orchestrator.
// It is an alias to ports.StorageProvider to keep call-sites simple.
type Provider = ports.StorageProvider
