package persist_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/persist"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestKVBridgeRoundTrip(t *testing.T) {
	ctx := context.Background()
	backends := map[string]persist.Backend{
		"memory": persist.NewMemoryBackend(),
		"file":   persist.NewFileBackend(t.TempDir()),
	}

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			bridge := persist.NewKVBridge(backend, "")
			if bridge.Key() != persist.DefaultKey {
				t.Fatalf("expected default key, got %q", bridge.Key())
			}
			if _, ok := bridge.Load(ctx); ok {
				t.Fatalf("expected empty store to report absent")
			}

			values := testsupport.ValidValues()
			bridge.Save(ctx, values)

			snapshot, ok := bridge.Load(ctx)
			if !ok {
				t.Fatalf("expected snapshot after save")
			}
			restored := formstate.Initialize(testsupport.DemoSchema(t), snapshot, ok)
			if diff := cmp.Diff(values, restored.Values()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKVBridgeSnapshotIsFlatJSON(t *testing.T) {
	ctx := context.Background()
	backend := persist.NewMemoryBackend()
	bridge := persist.NewKVBridge(backend, "signup")

	bridge.Save(ctx, model.Values{"age": model.Text("18"), "terms": model.Flag(true)})

	data, err := backend.Get(ctx, "signup")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got, want := string(data), `{"age":"18","terms":true}`; got != want {
		t.Fatalf("unexpected payload: got %s want %s", got, want)
	}
}

func TestKVBridgeMalformedSnapshotIsAbsent(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	backend := persist.NewMemoryBackend()
	bridge := persist.NewKVBridge(backend, "form", persist.WithLogger(zap.New(core).Sugar()))

	for _, payload := range []string{"{not json", "[1,2,3]", "null"} {
		if err := backend.Set(ctx, "form", []byte(payload)); err != nil {
			t.Fatalf("set: %v", err)
		}
		if snapshot, ok := bridge.Load(ctx); ok {
			t.Fatalf("payload %q: expected absent, got %v", payload, snapshot)
		}
	}

	if got := logs.FilterLevelExact(zapcore.WarnLevel).Len(); got != 3 {
		t.Fatalf("expected 3 warnings, got %d", got)
	}
}

type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestKVBridgeBackendFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	bridge := persist.NewKVBridge(failingBackend{}, "form", persist.WithLogger(zap.New(core).Sugar()))

	bridge.Save(ctx, testsupport.ValidValues())
	if _, ok := bridge.Load(ctx); ok {
		t.Fatalf("expected absent on backend failure")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "failed to save form data" {
		t.Fatalf("unexpected first message %q", entries[0].Message)
	}
}

func TestFileBackendLayout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	backend := persist.NewFileBackend(dir)

	if _, err := backend.Get(ctx, "form"); !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := backend.Set(ctx, "form", []byte(`{"a":"b"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "form.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != `{"a":"b"}` {
		t.Fatalf("unexpected file contents %s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}

	if err := backend.Set(ctx, "../escape", nil); err == nil {
		t.Fatalf("expected invalid key error")
	}
}

func TestNopBridge(t *testing.T) {
	var bridge persist.Bridge = persist.Nop{}
	bridge.Save(context.Background(), testsupport.ValidValues())
	if _, ok := bridge.Load(context.Background()); ok {
		t.Fatalf("expected nop bridge to report absent")
	}
}
