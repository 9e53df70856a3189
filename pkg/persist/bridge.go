package persist

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "dynamic_form_data"

// Bridge loads and saves the value snapshot of one form. Neither method
// reports errors: a snapshot that cannot be read is absent, and a failed
// save is dropped. Implementations log what went wrong.
type Bridge interface {
	Load(ctx context.Context) (formstate.Snapshot, bool)
	Save(ctx context.Context, values model.Values)
}

// Option configures a KVBridge.
type Option func(*KVBridge)

// WithLogger routes load/save failures to logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(b *KVBridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// KVBridge persists snapshots as a flat JSON object under a single key.
type KVBridge struct {
	backend Backend
	key     string
	logger  *zap.SugaredLogger
}

// Ensure KVBridge implements Bridge.
var _ Bridge = (*KVBridge)(nil)

// NewKVBridge wraps backend. An empty key falls back to DefaultKey.
func NewKVBridge(backend Backend, key string, opts ...Option) *KVBridge {
	if key == "" {
		key = DefaultKey
	}
	b := &KVBridge{
		backend: backend,
		key:     key,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Key reports the storage key.
func (b *KVBridge) Key() string {
	return b.key
}

// Load reads and decodes the snapshot. Missing keys, backend failures and
// malformed payloads all report absent.
func (b *KVBridge) Load(ctx context.Context) (formstate.Snapshot, bool) {
	if b.backend == nil {
		return nil, false
	}
	data, err := b.backend.Get(ctx, b.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		b.logger.Warnw("failed to read saved form data", "key", b.key, "error", err)
		return nil, false
	}

	var snapshot formstate.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		b.logger.Warnw("error parsing saved form data", "key", b.key, "error", err)
		return nil, false
	}
	if snapshot == nil {
		b.logger.Warnw("saved form data is not an object", "key", b.key)
		return nil, false
	}
	return snapshot, true
}

// Save encodes values and writes them. Failures are logged and swallowed.
func (b *KVBridge) Save(ctx context.Context, values model.Values) {
	if b.backend == nil {
		return
	}
	data, err := json.Marshal(values)
	if err != nil {
		b.logger.Warnw("failed to encode form data", "key", b.key, "error", err)
		return
	}
	if err := b.backend.Set(ctx, b.key, data); err != nil {
		b.logger.Warnw("failed to save form data", "key", b.key, "error", err)
		return
	}
	b.logger.Debugw("form data saved", "key", b.key, "fields", len(values))
}

// Nop is a Bridge that never has a snapshot and discards saves.
type Nop struct{}

func (Nop) Load(context.Context) (formstate.Snapshot, bool) { return nil, false }

func (Nop) Save(context.Context, model.Values) {}
