package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(t, os.WriteFile(path, []byte("IO.puts(1)\n"), 0o644))
	}
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"lib/app.ex",
		"lib/app/worker.ex",
		"lib/readme.md",
		"lib/_build/dev/gen.ex",
		"lib/deps/dep.ex",
		"test/app_test.exs",
		"test/support/helper.ex",
		"priv/seeds.exs",
	)

	lib := filepath.Join(dir, "lib")
	test := filepath.Join(dir, "test")

	w := New(WithRoots(lib, test))
	files, err := w.Walk(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(lib, "app", "worker.ex"),
		filepath.Join(lib, "app.ex"),
		filepath.Join(test, "app_test.exs"),
		filepath.Join(test, "support", "helper.ex"),
	}, files)
}

func TestWalkMissingRootsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "lib/app.ex")

	w := New(WithRoots(filepath.Join(dir, "lib"), filepath.Join(dir, "test")))
	files, err := w.Walk(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "lib", "app.ex")}, files)

	w = New(WithRoots(filepath.Join(dir, "nope")))
	files, err = w.Walk(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, len(files))
}

func TestWalkExcludes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"lib/app.ex",
		"lib/generated/schema.ex",
		"lib/app/debug.exs",
		"lib/app/server.ex",
	)
	lib := filepath.Join(dir, "lib")

	w := New(WithRoots(lib), WithExcludes("generated/**", "**/*.exs"))
	files, err := w.Walk(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(lib, "app", "server.ex"),
		filepath.Join(lib, "app.ex"),
	}, files)
}

func TestWalkFileRoot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "lib/app.ex", "notes.txt")

	app := filepath.Join(dir, "lib", "app.ex")
	w := New(WithRoots(app, filepath.Join(dir, "notes.txt"), filepath.Join(dir, "lib")))
	files, err := w.Walk(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{app}, files)
}

func TestWalkInvalidExclude(t *testing.T) {
	w := New(WithRoots(t.TempDir()), WithExcludes("lib/[a-"))
	_, err := w.Walk(context.Background())
	assert.EqualError(t, err, `invalid exclude pattern "lib/[a-"`)
}

func TestWalkCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "lib/app.ex")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithRoots(filepath.Join(dir, "lib"))).Walk(ctx)
	assert.IsError(t, err, context.Canceled)
}

func TestMatches(t *testing.T) {
	w := New(WithRoots("lib", "test"), WithExcludes("generated/**"))

	tests := []struct {
		path     string
		expected bool
	}{
		{"lib/app.ex", true},
		{"lib/app/worker.exs", true},
		{"test/app_test.exs", true},
		{"lib/app.md", false},
		{"priv/seeds.exs", false},
		{"lib/generated/schema.ex", false},
		{"lib/deps/dep.ex", false},
		{"lib/../priv/x.ex", false},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, w.Matches(filepath.FromSlash(test.path)))
		})
	}
}
