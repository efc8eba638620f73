// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cache

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interpreterFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!python"), 0o755))
	return path
}

func TestRecordAndLookup(t *testing.T) {
	store := New(Options{Dir: t.TempDir(), TTL: time.Hour, Version: "1.0"})
	python := interpreterFile(t, t.TempDir(), "python3.12")

	require.NoError(t, store.Record(python, "3.12.1"))

	version, ok, err := store.Lookup(python)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3.12.1", version)
}

func TestLookupWithoutEntry(t *testing.T) {
	store := New(Options{Dir: filepath.Join(t.TempDir(), "not-created")})
	python := interpreterFile(t, t.TempDir(), "python")

	version, ok, err := store.Lookup(python)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, version)
}

func TestLookupMissingInterpreter(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})

	_, ok, err := store.Lookup(filepath.Join(t.TempDir(), "python"))
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Stats().Errors)
}

func TestRebuiltInterpreterIsStale(t *testing.T) {
	store := New(Options{Dir: t.TempDir(), TTL: time.Hour})
	python := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, store.Record(python, "3.11.4"))

	require.NoError(t, os.WriteFile(python, []byte("#!python rebuilt"), 0o755))

	_, ok, err := store.Lookup(python)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTouchedInterpreterIsStale(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})
	python := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, store.Record(python, "3.11.4"))

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(python, later, later))

	_, ok, err := store.Lookup(python)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredEntry(t *testing.T) {
	store := New(Options{Dir: t.TempDir(), TTL: time.Millisecond})
	python := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, store.Record(python, "3.10.13"))

	time.Sleep(10 * time.Millisecond)

	_, ok, err := store.Lookup(python)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntryFromOtherVersionIsIgnored(t *testing.T) {
	dir := t.TempDir()
	python := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, New(Options{Dir: dir, Version: "1.0"}).Record(python, "3.9.18"))

	_, ok, err := New(Options{Dir: dir, Version: "2.0"}).Lookup(python)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = New(Options{Dir: dir, Version: "1.0"}).Lookup(python)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCorruptEntry(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})
	python := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, os.WriteFile(store.path(python), []byte("{not json"), 0o600))

	_, ok, err := store.Lookup(python)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})
	bin := t.TempDir()
	python := interpreterFile(t, bin, "python")
	other := interpreterFile(t, bin, "python3")
	require.NoError(t, store.Record(python, "3.12.1"))
	require.NoError(t, store.Record(other, "3.12.1"))

	require.NoError(t, os.Remove(python))
	require.NoError(t, store.Forget(python), "an uninstalled interpreter can be forgotten")
	assert.NoFileExists(t, store.path(python))

	_, ok, err := store.Lookup(other)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, store.Forget(python), "forgetting twice is not an error")
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	store := New(Options{Dir: dir})
	bin := t.TempDir()
	for _, name := range []string{"python", "python3", "python3.12"} {
		require.NoError(t, store.Record(interpreterFile(t, bin, name), "3.12.1"))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o600))

	require.NoError(t, store.Clear())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "README", files[0].Name())
}

func TestClearWithoutDirectory(t *testing.T) {
	store := New(Options{Dir: filepath.Join(t.TempDir(), "never-written")})
	assert.NoError(t, store.Clear())
}

func TestStats(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})
	python := interpreterFile(t, t.TempDir(), "python")

	_, _, _ = store.Lookup(python)
	require.NoError(t, store.Record(python, "3.12.1"))
	_, _, _ = store.Lookup(python)
	_, _, _ = store.Lookup(python)

	assert.Equal(t, Stats{Hits: 2, Misses: 1}, store.Stats())
}

func TestInterpretersWithSameNameDoNotCollide(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})
	a := interpreterFile(t, t.TempDir(), "python")
	b := interpreterFile(t, t.TempDir(), "python")
	require.NoError(t, store.Record(a, "3.11.4"))
	require.NoError(t, store.Record(b, "3.12.1"))

	got, ok, err := store.Lookup(a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3.11.4", got)
}

func TestEntryFileName(t *testing.T) {
	store := New(Options{Dir: t.TempDir()})

	name := filepath.Base(store.path("/home/u/.pyenv/versions/3.12.1/bin/python3.12"))
	assert.True(t, strings.HasPrefix(name, "python3.12-"), name)
	assert.Equal(t, ".json", filepath.Ext(name))

	name = filepath.Base(store.path(`C:\Program Files\Python 3\python.exe`))
	assert.NotContains(t, name, " ")

	name = filepath.Base(store.path(strings.Repeat("x", 300)))
	assert.LessOrEqual(t, len(name), maxNameLength+len("-")+16+len(".json"))
}

func TestConcurrentLookupAndRecord(t *testing.T) {
	store := New(Options{Dir: t.TempDir(), TTL: time.Hour})
	python := interpreterFile(t, t.TempDir(), "python")

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if id%2 == 0 {
					_ = store.Record(python, "3.12.1")
					continue
				}
				if version, ok, err := store.Lookup(python); err == nil && ok {
					assert.Equal(t, "3.12.1", version)
				}
			}
		}(g)
	}
	wg.Wait()

	stats := store.Stats()
	assert.Zero(t, stats.Errors)
	assert.Equal(t, 10*25, stats.Hits+stats.Misses)
}
