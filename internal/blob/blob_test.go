package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fsStore, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"fs":     fsStore,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			payload := "exported genome archive bytes"
			info, err := store.Put(ctx, "exports/g1.tar.gz", strings.NewReader(payload), PutOptions{
				ContentType: "application/gzip",
				Metadata:    map[string]string{"genome": "83333.1"},
			})
			if err != nil {
				t.Fatalf("put: %v", err)
			}
			if info.Size != int64(len(payload)) {
				t.Fatalf("size: got %d want %d", info.Size, len(payload))
			}

			// Create-only: second put of the same key fails.
			if _, err := store.Put(ctx, "exports/g1.tar.gz", strings.NewReader("x"), PutOptions{}); err == nil {
				t.Fatalf("expected error on duplicate put")
			}

			got, rc, err := store.Get(ctx, "exports/g1.tar.gz")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			body, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(body) != payload {
				t.Fatalf("body mismatch: %q", body)
			}
			if got.ContentType != "application/gzip" || got.Metadata["genome"] != "83333.1" {
				t.Fatalf("metadata lost: %+v", got)
			}

			if _, err := store.Head(ctx, "exports/g1.tar.gz"); err != nil {
				t.Fatalf("head: %v", err)
			}
			if _, err := store.Head(ctx, "exports/missing"); err == nil {
				t.Fatalf("expected head miss")
			}

			infos, err := store.List(ctx, "exports/")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(infos) != 1 || infos[0].Key != "exports/g1.tar.gz" {
				t.Fatalf("unexpected listing %+v", infos)
			}

			existed, err := store.Delete(ctx, "exports/g1.tar.gz")
			if err != nil || !existed {
				t.Fatalf("delete: existed=%v err=%v", existed, err)
			}
			existed, err = store.Delete(ctx, "exports/g1.tar.gz")
			if err != nil || existed {
				t.Fatalf("second delete: existed=%v err=%v", existed, err)
			}
		})
	}
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "../escape", "/abs"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Setenv("GENOMECORE_BLOB_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("unexpected driver %s", store.Driver())
	}

	t.Setenv("GENOMECORE_BLOB_DRIVER", "bogus")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}

	t.Setenv("GENOMECORE_BLOB_DRIVER", "fs")
	t.Setenv("GENOMECORE_BLOB_FS_ROOT", t.TempDir())
	store, err = Open(context.Background())
	if err != nil {
		t.Fatalf("open fs: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}
