// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package health aggregates named health checks into the status tree
// reported by /endpoints/health.
package health

import (
	"context"
	"sort"
	"sync"
)

// Status is the state of a check or of the whole service.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// Checker reports whether a dependency is usable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to [Checker].
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// Health is a node of the health tree. Err is set for a failed check and
// Detail holds the result of every named check under the root.
type Health struct {
	Status Status            `json:"status"`
	Err    string            `json:"err,omitempty"`
	Detail map[string]Health `json:"detail,omitempty"`
}

// Up reports whether h is healthy.
func (h Health) Up() bool {
	return h.Status == StatusUp
}

// Registry holds named checks. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// Add registers c under name, replacing any check already registered with
// the same name.
func (r *Registry) Add(name string, c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = c
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs every registered check in name order. The root is DOWN if any
// check fails.
func (r *Registry) Check(ctx context.Context) Health {
	root := Health{Status: StatusUp}

	for _, name := range r.Names() {
		r.mu.RLock()
		c := r.checkers[name]
		r.mu.RUnlock()
		if c == nil {
			continue
		}

		node := Health{Status: StatusUp}
		if err := c.Check(ctx); err != nil {
			node = Health{Status: StatusDown, Err: err.Error()}
			root.Status = StatusDown
		}

		if root.Detail == nil {
			root.Detail = make(map[string]Health)
		}
		root.Detail[name] = node
	}

	return root
}
