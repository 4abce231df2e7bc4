package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetMissingFileYieldsEmptySettings(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	settings, err := store.Get()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(settings) != 0 {
		t.Fatalf("expected empty settings, got %v", settings)
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	in := map[string]json.RawMessage{
		"siteName":     json.RawMessage(`"Oak & Linen"`),
		"currency":     json.RawMessage(`"EUR"`),
		"freeShipping": json.RawMessage(`{"threshold":100}`),
	}
	if err := store.Put(in); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	out, err := store.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d keys, got %d", len(in), len(out))
	}
	var threshold struct {
		Threshold int `json:"threshold"`
	}
	if err := json.Unmarshal(out["freeShipping"], &threshold); err != nil {
		t.Fatalf("nested value did not survive: %v", err)
	}
	if threshold.Threshold != 100 {
		t.Fatalf("threshold = %d, want 100", threshold.Threshold)
	}
}

func TestPutCreatesParentDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "config", "settings.json"))

	if err := store.Put(map[string]json.RawMessage{"a": json.RawMessage(`1`)}); err != nil {
		t.Fatalf("put into a missing directory failed: %v", err)
	}
}

func TestPutReplacesWithoutLeavingTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "settings.json"))

	if err := store.Put(map[string]json.RawMessage{"a": json.RawMessage(`1`)}); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := store.Put(map[string]json.RawMessage{"b": json.RawMessage(`2`)}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.json" {
		t.Fatalf("expected only settings.json after rename, got %v", entries)
	}

	out, err := store.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, ok := out["a"]; ok {
		t.Fatal("put must replace the whole object, not merge")
	}
	if _, ok := out["b"]; !ok {
		t.Fatal("second put content missing")
	}
}

func TestGetCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	if _, err := NewStore(path).Get(); err == nil {
		t.Fatal("corrupt settings file must surface an error")
	}
}

func TestNotifierDeliversTicks(t *testing.T) {
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	notifier.Notify()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the tick")
	}
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	cancel()

	notifier.Notify()

	select {
	case <-ch:
		t.Fatal("cancelled subscriber must not receive ticks")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierDoesNotBlockOnSlowSubscriber(t *testing.T) {
	notifier := NewNotifier()
	_, cancel := notifier.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// The subscriber never reads; repeated notifies must still return.
		for i := 0; i < 10; i++ {
			notifier.Notify()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a slow subscriber")
	}
}
