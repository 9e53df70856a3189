package formstate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestInitializeDefaults(t *testing.T) {
	state := formstate.Initialize(testsupport.DemoSchema(t), nil, false)

	want := model.Values{
		"username": model.Text(""),
		"email":    model.Text(""),
		"age":      model.Text(""),
		"gender":   model.Text(""),
		"terms":    model.Flag(false),
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(state.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", state.Errors())
	}
	for _, name := range state.Schema().Names() {
		if state.Touched(name) {
			t.Fatalf("expected %s to start untouched", name)
		}
	}
}

func TestSetValueDefersValidationUntilTouched(t *testing.T) {
	state := formstate.Initialize(testsupport.AgeSchema(t), nil, false)

	state, err := state.SetValue("age", model.Text("15"))
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := state.Error("age"); got != "" {
		t.Fatalf("expected no error before touch, got %q", got)
	}

	state, err = state.MarkTouched("age")
	if err != nil {
		t.Fatalf("mark touched: %v", err)
	}
	if got := state.Error("age"); !strings.Contains(got, "at least 18") {
		t.Fatalf("expected min error after touch, got %q", got)
	}
	if got := state.VisibleError("age"); got != state.Error("age") {
		t.Fatalf("expected touched error to be visible, got %q", got)
	}
}

func TestSetValueRevalidatesTouchedField(t *testing.T) {
	state := formstate.Initialize(testsupport.AgeSchema(t), nil, false)
	state, _ = state.MarkTouched("age")
	if got := state.Error("age"); got != "Age is required" {
		t.Fatalf("expected required error, got %q", got)
	}

	state, _ = state.SetValue("age", model.Text("30"))
	if got := state.Error("age"); got != "" {
		t.Fatalf("expected error cleared by valid value, got %q", got)
	}

	state, _ = state.SetValue("age", model.Text("99"))
	if got := state.Error("age"); got != "Value must be less than or equal to 60" {
		t.Fatalf("expected max error, got %q", got)
	}
}

func TestMarkTouchedIsIdempotent(t *testing.T) {
	state := formstate.Initialize(testsupport.AgeSchema(t), nil, false)
	state, _ = state.SetValue("age", model.Text("abc"))

	once, _ := state.MarkTouched("age")
	twice, _ := once.MarkTouched("age")

	if once.Error("age") != twice.Error("age") {
		t.Fatalf("expected identical verdicts, got %q and %q", once.Error("age"), twice.Error("age"))
	}
	if diff := cmp.Diff(once.Errors(), twice.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-once +twice):\n%s", diff)
	}
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	before := formstate.Initialize(testsupport.AgeSchema(t), nil, false)

	after, _ := before.SetValue("age", model.Text("20"))
	after, _ = after.MarkTouched("age")
	after = after.TouchAll()
	after, _ = after.ValidateAll()

	if v, _ := before.Value("age"); v.String() != "" {
		t.Fatalf("receiver value mutated: %q", v.String())
	}
	if before.Touched("age") {
		t.Fatalf("receiver touched flag mutated")
	}
	if v, _ := after.Value("age"); v.String() != "20" {
		t.Fatalf("expected new state to carry value, got %q", v.String())
	}
}

func TestSetValueRejectsUnknownFieldsAndWrongShapes(t *testing.T) {
	state := formstate.Initialize(testsupport.DemoSchema(t), nil, false)

	if _, err := state.SetValue("nickname", model.Text("x")); !errors.Is(err, formstate.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := state.MarkTouched("nickname"); !errors.Is(err, formstate.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from MarkTouched, got %v", err)
	}
	if _, err := state.SetValue("terms", model.Text("yes")); !errors.Is(err, formstate.ErrValueKind) {
		t.Fatalf("expected ErrValueKind for checkbox, got %v", err)
	}
	unchanged, err := state.SetValue("username", model.Flag(true))
	if !errors.Is(err, formstate.ErrValueKind) {
		t.Fatalf("expected ErrValueKind for text, got %v", err)
	}
	if diff := cmp.Diff(state.Values(), unchanged.Values()); diff != "" {
		t.Fatalf("state changed on rejected update (-want +got):\n%s", diff)
	}
}

func TestValidateAllReplacesErrorMap(t *testing.T) {
	state := formstate.Initialize(testsupport.DemoSchema(t), nil, false)
	state, _ = state.SetValue("username", model.Text("ab"))
	state, _ = state.SetValue("email", model.Text("not-an-email"))
	state, _ = state.SetValue("age", model.Text("17"))

	state, ok := state.ValidateAll()
	if ok {
		t.Fatalf("expected validation failure")
	}
	want := map[string]string{
		"username": "Username must be at least 3 characters",
		"email":    "Please enter a valid email address",
		"age":      "Value must be at least 18",
	}
	if diff := cmp.Diff(want, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(state.VisibleErrors()) != 0 {
		t.Fatalf("expected untouched errors to stay hidden, got %v", state.VisibleErrors())
	}

	state, _ = state.SetValue("username", model.Text("ada"))
	state, _ = state.SetValue("email", model.Text("ada@example.com"))
	state, _ = state.SetValue("age", model.Text("36"))
	state, ok = state.ValidateAll()
	if !ok {
		t.Fatalf("expected validation to pass, got %v", state.Errors())
	}
	if len(state.Errors()) != 0 {
		t.Fatalf("expected stale errors to be dropped, got %v", state.Errors())
	}
}

func TestTouchAllMakesErrorsVisible(t *testing.T) {
	state := formstate.Initialize(testsupport.DemoSchema(t), nil, false)
	state, _ = state.ValidateAll()
	state = state.TouchAll()

	want := map[string]string{
		"username": "Username is required",
		"email":    "Email Address is required",
	}
	if diff := cmp.Diff(want, state.VisibleErrors()); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
}
