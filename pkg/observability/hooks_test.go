package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Merge hooks
	m := NoopMergeHooks{}
	m.OnMergeStart(ctx, 3)
	m.OnMergeComplete(ctx, "target", 2, time.Millisecond, nil)

	// Stack hooks
	s := NoopStackHooks{}
	s.OnExecute("Merge Elements")
	s.OnUndo("Merge Elements")
	s.OnRedo("Merge Elements")

	// Store hooks
	st := NoopStoreHooks{}
	st.OnLoad(ctx, "file", "model", true, 1024)
	st.OnSave(ctx, "redis", "model", 1024)
	st.OnError(ctx, "mongo", "get", errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Merge().(NoopMergeHooks); !ok {
		t.Error("Merge() should return NoopMergeHooks by default")
	}
	if _, ok := Stack().(NoopStackHooks); !ok {
		t.Error("Stack() should return NoopStackHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	// Set custom hooks
	customMerge := &testMergeHooks{}
	SetMergeHooks(customMerge)
	if Merge() != customMerge {
		t.Error("SetMergeHooks should set custom hooks")
	}

	customStack := &testStackHooks{}
	SetStackHooks(customStack)
	if Stack() != customStack {
		t.Error("SetStackHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Merge().(NoopMergeHooks); !ok {
		t.Error("Reset() should restore NoopMergeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMergeHooks{}
	SetMergeHooks(custom)

	// Setting nil should be ignored
	SetMergeHooks(nil)

	if Merge() != custom {
		t.Error("SetMergeHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testMergeHooks struct{ NoopMergeHooks }
type testStackHooks struct{ NoopStackHooks }
type testStoreHooks struct{ NoopStoreHooks }
