// Package module defines the contract api.Mount composes and the registry of mounted modules
package module

import (
	phttp "twinlytics/internal/platform/net/http"
)

// Module mounts routes and exposes a port bundle for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
