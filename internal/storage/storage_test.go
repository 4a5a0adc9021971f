// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetSetDelete(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if _, err := s.Get("pref:alice"); !errors.Is(err, badger.ErrKeyNotFound) {
		t.Fatalf("Get missing = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set("pref:alice", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get("pref:alice")
	if err != nil || string(got) != `{"a":1}` {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Delete("pref:alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("pref:alice"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, err := s.Get("pref:alice"); !errors.Is(err, badger.ErrKeyNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestStore_ScanStripsPrefixAndIsolatesNamespaces(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.WriteBatch("pref:", map[string][]byte{"bob": []byte("2"), "alice": []byte("1")}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := s.Set("emb:m:gin", []byte("vec")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var keys []string
	var vals [][]byte
	err := s.Scan(context.Background(), "pref:", func(k string, v []byte) error {
		keys = append(keys, k)
		vals = append(vals, bytes.Clone(v))
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if strings.Join(keys, ",") != "alice,bob" {
		t.Errorf("keys = %v, want [alice bob]", keys)
	}
	if string(vals[0]) != "1" || string(vals[1]) != "2" {
		t.Errorf("vals = %q", vals)
	}
}

func TestStore_ScanCallbackError(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	_ = s.Set("pref:a", []byte("x"))

	boom := errors.New("boom")
	if err := s.Scan(context.Background(), "pref:", func(string, []byte) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Scan error = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Scan(ctx, "pref:", func(string, []byte) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan canceled error = %v", err)
	}
}

func TestStore_Closed(t *testing.T) {
	t.Parallel()

	s, err := OpenInMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Set("k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after close = %v, want ErrClosed", err)
	}
}

func TestOpen_OnDiskPersists(t *testing.T) {
	t.Parallel()

	cfg := config.StorageConfig{Path: t.TempDir(), SyncWrites: true}

	s, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set("pref:carol", []byte("saved")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get("pref:carol")
	if err != nil || string(got) != "saved" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestBadgerLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newBadgerLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	l.Errorf("compaction failed: %s\n", "disk")
	l.Infof("chatty %d", 1)
	l.Debugf("hidden")

	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "compaction failed: disk") {
		t.Errorf("error line missing: %s", out)
	}
	if !strings.Contains(out, `"level":"debug"`) {
		t.Errorf("info should be demoted to debug: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("trace output should be filtered at debug level: %s", out)
	}
	if strings.Contains(out, `disk\n`) {
		t.Errorf("trailing newline not trimmed: %s", out)
	}
}
