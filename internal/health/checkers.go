// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"time"

	"github.com/ManuGH/recipebox/internal/orchestrator"
)

const pingTimeout = 2 * time.Second

// PingChecker is unhealthy while ping fails, e.g. an unreachable cache backend.
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingChecker(name string, ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.ping(ctx); err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}

// LoaderChecker reflects a loader's last outcome. A failed load only
// degrades: the screen keeps whatever it showed.
type LoaderChecker struct {
	name  string
	state func() (orchestrator.Phase, string)
}

// NewLoaderChecker reads the phase and error message from state on each check.
func NewLoaderChecker(name string, state func() (orchestrator.Phase, string)) *LoaderChecker {
	return &LoaderChecker{name: name, state: state}
}

func (c *LoaderChecker) Name() string { return c.name }

func (c *LoaderChecker) Check(context.Context) CheckResult {
	phase, msg := c.state()
	switch phase {
	case orchestrator.PhaseError:
		return CheckResult{Status: StatusDegraded, Message: "last load failed", Error: msg}
	case orchestrator.PhaseIdle:
		return CheckResult{Status: StatusHealthy, Message: "no load yet"}
	default:
		return CheckResult{Status: StatusHealthy, Message: phase.String()}
	}
}
