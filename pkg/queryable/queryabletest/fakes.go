// Package queryabletest provides recording fakes for the collaborator
// interfaces the composition core consumes, so build behavior can be
// verified without a transport, a batch aggregator, or a real service.
package queryabletest

import (
	"context"
	"net/http"
	"sync"

	"github.com/odqkit/odq/pkg/odurl"
)

// Recorder keeps an ordered trace of named events across fakes, letting
// tests assert happens-before relationships.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *Recorder) Note(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Batch is a recording fake of the batch aggregator's dependency handshake.
type Batch struct {
	Rec *Recorder

	mu         sync.Mutex
	registered int
	released   int
}

// RegisterDependency counts the registration and returns a release that
// counts its own invocations.
func (b *Batch) RegisterDependency() func() {
	b.mu.Lock()
	b.registered++
	b.mu.Unlock()
	if b.Rec != nil {
		b.Rec.Note("register")
	}
	return func() {
		b.mu.Lock()
		b.released++
		b.mu.Unlock()
		if b.Rec != nil {
			b.Rec.Note("release")
		}
	}
}

func (b *Batch) Registered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registered
}

func (b *Batch) Released() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

// StaticResolver resolves relative URLs against a fixed base, or fails
// with Err when set.
type StaticResolver struct {
	Base string
	Err  error
	Rec  *Recorder
}

func (r *StaticResolver) ToAbsolute(_ context.Context, rawURL string) (string, error) {
	if r.Rec != nil {
		r.Rec.Note("resolve")
	}
	if r.Err != nil {
		return "", r.Err
	}
	if odurl.IsAbsolute(rawURL) {
		return rawURL, nil
	}
	return odurl.Combine(r.Base, rawURL), nil
}

// CannedParser answers every response with a fixed value.
type CannedParser struct {
	Value any
	Err   error
}

func (p *CannedParser) Parse(resp *http.Response) (any, error) {
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return p.Value, p.Err
}
