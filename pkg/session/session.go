package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/persist"
	"github.com/goliatone/go-formstate/pkg/submission"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	bridge   persist.Bridge
	callback submission.Callback
	logger   *zap.SugaredLogger
}

// WithBridge enables persistence through bridge.
func WithBridge(bridge persist.Bridge) Option {
	return func(cfg *config) {
		if bridge != nil {
			cfg.bridge = bridge
		}
	}
}

// WithCallback sets the function invoked on a successful submit.
func WithCallback(cb submission.Callback) Option {
	return func(cfg *config) {
		cfg.callback = cb
	}
}

// WithLogger sets the logger shared by the session and its controller.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Session is one live form instance. It maps host events (change, blur,
// submit) onto state operations and persists values after every change.
// A Session is driven by a single goroutine and is not safe for concurrent
// use.
type Session struct {
	state      formstate.State
	bridge     persist.Bridge
	controller *submission.Controller
	logger     *zap.SugaredLogger
}

// New restores the persisted snapshot, if any, and builds the initial state.
func New(ctx context.Context, schema model.Schema, opts ...Option) *Session {
	cfg := config{
		bridge: persist.Nop{},
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	snapshot, ok := cfg.bridge.Load(ctx)
	if ok {
		cfg.logger.Debugw("restored saved form data", "fields", len(snapshot))
	}

	return &Session{
		state:      formstate.Initialize(schema, snapshot, ok),
		bridge:     cfg.bridge,
		controller: submission.New(cfg.callback, submission.WithLogger(cfg.logger)),
		logger:     cfg.logger,
	}
}

// State returns the current immutable state.
func (s *Session) State() formstate.State {
	return s.state
}

// Change applies a new value and saves the value map when it changed.
func (s *Session) Change(ctx context.Context, name string, v model.Value) error {
	prev, _ := s.state.Value(name)
	next, err := s.state.SetValue(name, v)
	if err != nil {
		return err
	}
	s.state = next
	if !prev.Equal(v) {
		s.bridge.Save(ctx, s.state.Values())
	}
	return nil
}

// Blur marks name as touched, making its verdict visible.
func (s *Session) Blur(name string) error {
	next, err := s.state.MarkTouched(name)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// VisibleError is a shortcut for State().VisibleError.
func (s *Session) VisibleError(name string) string {
	return s.state.VisibleError(name)
}

// Submit runs the submission controller against the current state.
func (s *Session) Submit(ctx context.Context) submission.Result {
	next, result := s.controller.Submit(ctx, s.state)
	s.state = next
	return result
}
