// Package modkit provides module wiring and core deps
package modkit

import "twinlytics/internal/modkit/module"

// Module is the surface api.Mount composes: routes, ports and a name
type Module = module.Module
