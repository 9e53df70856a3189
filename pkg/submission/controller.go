package submission

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrInvalid is reported in Result.Err when at least one field failed.
var ErrInvalid = errors.New("submission: form has invalid fields")

// Callback receives the values of a fully valid form. The map is a private
// copy; later state changes are not reflected in it.
type Callback func(ctx context.Context, values model.Values) error

// Result describes one submission attempt.
type Result struct {
	// OK is true only when every field passed and the callback succeeded.
	OK bool
	// Errors holds the verdict of every failing field. All of them are
	// visible since submission touches every field.
	Errors map[string]string
	// Err is ErrInvalid on a validation failure or the wrapped callback
	// error.
	Err error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used to report submissions.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller gates a callback behind a full-form validation pass.
type Controller struct {
	callback Callback
	logger   *zap.SugaredLogger
}

// New builds a Controller. A nil callback turns Submit into a pure
// validation gate.
func New(callback Callback, opts ...Option) *Controller {
	c := &Controller{
		callback: callback,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Submit touches every field, validates the whole form and invokes the
// callback only when everything passes. The returned State carries the
// touched flags and the fresh error map either way.
func (c *Controller) Submit(ctx context.Context, state formstate.State) (formstate.State, Result) {
	state = state.TouchAll()
	state, valid := state.ValidateAll()

	if !valid {
		errs := state.Errors()
		c.logger.Debugw("submission rejected", "invalid_fields", len(errs))
		return state, Result{Errors: errs, Err: ErrInvalid}
	}

	if c.callback != nil {
		if err := c.callback(ctx, state.Values()); err != nil {
			c.logger.Warnw("submit callback failed", "error", err)
			return state, Result{Err: fmt.Errorf("submission: callback: %w", err)}
		}
	}

	c.logger.Infow("form submitted", "fields", state.Schema().Len())
	return state, Result{OK: true}
}
