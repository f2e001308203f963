// Package mocks holds an in-memory stand-in for infras/otel used by unit tests.
// Traced errors and events are kept on each scope so a test can look at them.
package mocks

import (
	"context"
	"resort/infras/otel"
	"sync"
)

type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func NewOtel() otel.Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{Name: spanName}

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

// Scopes returns every scope opened so far, in order.
func (o *Otel) Scopes() []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]*Scope(nil), o.scopes...)
}

type Scope struct {
	Name   string
	Errors []error
	Events []string
	Ended  bool
}

func (s *Scope) End() {
	s.Ended = true
}

func (s *Scope) TraceError(err error) {
	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err *error) {
	if err != nil && *err != nil {
		s.TraceError(*err)
	}
}

func (s *Scope) AddEvent(name string) {
	s.Events = append(s.Events, name)
}

func (s *Scope) SetAttribute(_ string, _ any) {}

func (s *Scope) SetAttributes(_ map[string]any) {}
