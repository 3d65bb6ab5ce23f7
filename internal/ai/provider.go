package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Provider fronts an ordered list of backends. The first configured
// backend is preferred; on failure the request is retried once against
// the next one. Adding a third backend is a matter of appending to the
// list.
type Provider struct {
	backends []Backend
	timeout  time.Duration
	log      zerolog.Logger
}

// NewProvider builds a provider over the given backends in preference
// order. timeout bounds each individual backend attempt; zero disables
// the per-attempt deadline.
func NewProvider(log zerolog.Logger, timeout time.Duration, backends ...Backend) *Provider {
	return &Provider{backends: backends, timeout: timeout, log: log}
}

// Available reports whether at least one backend is configured.
func (p *Provider) Available() bool { return len(p.backends) > 0 }

// ActiveBackend returns the name of the backend that would be tried
// first, or "None" when no backend is configured.
func (p *Provider) ActiveBackend() string {
	if len(p.backends) == 0 {
		return "None"
	}
	return p.backends[0].Name()
}

// Complete produces a free-text completion, failing over once.
func (p *Provider) Complete(ctx context.Context, msgs []Message) (string, error) {
	if len(p.backends) == 0 {
		return "", ErrNoBackend
	}

	var errs []error
	for _, b := range p.backends {
		attemptCtx, cancel := p.attemptContext(ctx)
		out, err := b.Complete(attemptCtx, msgs)
		cancel()
		if err == nil {
			return out, nil
		}
		p.log.Warn().Err(err).Str("backend", b.Name()).Msg("completion failed")
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	return "", p.invocationError(errs)
}

// CompleteJSON produces a structured completion decoded into out. A
// backend whose payload cannot be decoded counts as a failed attempt,
// so a malformed primary response still falls back once; if the final
// attempt is malformed the call fails with a ParseError rather than
// silently defaulting.
func (p *Provider) CompleteJSON(ctx context.Context, msgs []Message, out any) error {
	if len(p.backends) == 0 {
		return ErrNoBackend
	}

	var errs []error
	var lastParse *ParseError
	for _, b := range p.backends {
		attemptCtx, cancel := p.attemptContext(ctx)
		raw, err := b.CompleteJSON(attemptCtx, msgs)
		cancel()
		if err != nil {
			p.log.Warn().Err(err).Str("backend", b.Name()).Msg("structured completion failed")
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			lastParse = nil
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			lastParse = &ParseError{Backend: b.Name(), Err: err}
			p.log.Warn().Err(err).Str("backend", b.Name()).Msg("structured completion not parseable")
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		return nil
	}
	if lastParse != nil {
		return lastParse
	}
	return p.invocationError(errs)
}

func (p *Provider) invocationError(errs []error) error {
	last := p.backends[len(errs)-1]
	return &InvocationError{
		Backend:           last.Name(),
		FallbackAttempted: len(errs) > 1,
		Err:               errors.Join(errs...),
	}
}

func (p *Provider) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}
