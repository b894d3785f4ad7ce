package module

import (
	dom "twinlytics/internal/services/twindata/domain"
	"twinlytics/internal/services/twindata/guard"
)

// Ports holds the ports exposed by the twin data module
type Ports struct {
	Source dom.SourcePort
	Health dom.HealthPort
}

type health struct {
	backend string
	g       *guard.Guard
}

var _ dom.HealthPort = health{}

func (h health) Backend() string { return h.backend }

func (h health) Breaker() string { return h.g.State().String() }
