package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/dyesthetics/errors"
)

const testDebounce = 50 * time.Millisecond

type harness struct {
	root  string
	calls chan struct{}
	count atomic.Int32
}

func startWatcher(t *testing.T, opts func(o *Options)) *harness {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "button"), 0755))

	h := &harness{root: root, calls: make(chan struct{}, 16)}
	o := Options{Root: root, Debounce: testDebounce}
	if opts != nil {
		opts(&o)
	}

	w, err := New(o, func(ctx context.Context) error {
		h.count.Add(1)
		h.calls <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return h
}

func (h *harness) expectCall(t *testing.T) {
	t.Helper()
	select {
	case <-h.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}
}

func (h *harness) expectNoCall(t *testing.T) {
	t.Helper()
	select {
	case <-h.calls:
		t.Fatal("handler was called unexpectedly")
	case <-time.After(6 * testDebounce):
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_ComponentFileChange(t *testing.T) {
	h := startWatcher(t, nil)

	writeFile(t, filepath.Join(h.root, "button", "index.tsx"), "export default 1")
	h.expectCall(t)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	h := startWatcher(t, func(o *Options) { o.Debounce = 200 * time.Millisecond })

	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(h.root, "button", "index.tsx"), "export default "+string(rune('a'+i)))
	}
	h.expectCall(t)
	h.expectNoCall(t)
	assert.Equal(t, int32(1), h.count.Load())
}

func TestWatcher_NewComponentDirectory(t *testing.T) {
	h := startWatcher(t, nil)

	card := filepath.Join(h.root, "card")
	require.NoError(t, os.Mkdir(card, 0755))
	h.expectCall(t)

	// the new directory is watched from now on
	writeFile(t, filepath.Join(card, "index.tsx"), "export default 1")
	h.expectCall(t)
}

func TestWatcher_IgnoresOutput(t *testing.T) {
	var output string
	h := startWatcher(t, func(o *Options) {
		output = filepath.Join(o.Root, "componentRegistry.ts")
		o.Ignore = []string{output}
	})

	writeFile(t, output, "// generated")
	writeFile(t, filepath.Join(h.root, ".componentRegistry.ts.123.tmp"), "// staging")
	h.expectNoCall(t)
}

func TestWatcher_ConfigFile(t *testing.T) {
	cfgDir := t.TempDir()
	cfgFile := filepath.Join(cfgDir, ".dyestheticsrc.json")
	writeFile(t, cfgFile, "{}")

	h := startWatcher(t, func(o *Options) { o.Files = []string{cfgFile} })

	writeFile(t, filepath.Join(cfgDir, "unrelated.txt"), "x")
	h.expectNoCall(t)

	writeFile(t, cfgFile, `{"componentsDir": "src"}`)
	h.expectCall(t)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "missing")}, func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	w := &Watcher{
		root:   filepath.FromSlash("/p/src/components"),
		files:  map[string]struct{}{filepath.FromSlash("/p/.dyestheticsrc"): {}},
		ignore: []string{filepath.FromSlash("/p/src/components/registry.ts")},
	}

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"/p/src/components/button", fsnotify.Create, true},
		{"/p/src/components/button/index.tsx", fsnotify.Write, true},
		{"/p/src/components/button/index.tsx", fsnotify.Chmod, false},
		{"/p/src/components/registry.ts", fsnotify.Write, false},
		{"/p/src/components/.registry.ts.42.tmp", fsnotify.Create, false},
		{"/p/.dyestheticsrc", fsnotify.Write, true},
		{"/p/package.json", fsnotify.Write, false},
	}
	for _, tt := range tests {
		got := w.relevant(fsnotify.Event{Name: filepath.FromSlash(tt.name), Op: tt.op})
		assert.Equal(t, tt.want, got, "%s %s", tt.op, tt.name)
	}
}

func TestFire_LogsErrorKind(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := &Watcher{
		log: zap.New(core).Sugar(),
		handler: func(context.Context) error {
			return errors.Classify(errors.Mark(errors.New("disk full"), errors.ErrWrite),
				errors.KindGeneration, "failed to write registry file")
		},
	}

	w.fire(context.Background())

	entries := logs.FilterMessage("Regeneration failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(errors.KindWrite), entries[0].ContextMap()["error_kind"])
}

func TestFire_SkipsAfterCancel(t *testing.T) {
	var calls atomic.Int32
	w := &Watcher{
		log: zap.NewNop().Sugar(),
		handler: func(context.Context) error {
			calls.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.fire(ctx)
	assert.Zero(t, calls.Load())
}
