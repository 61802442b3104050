package bytestore

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"medicore/internal/store"

	"github.com/spf13/afero"
)

func TestByteStores(t *testing.T) {
	fileStore, err := NewFile(afero.NewMemMapFs(), "/var/medicore")
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	backends := map[string]store.ByteStore{
		"memory": NewMemory(),
		"file":   fileStore,
	}

	for name, bs := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := bs.Load(ctx, "snap"); !errors.Is(err, store.ErrSnapshotNotFound) {
				t.Fatalf("Load() on empty store error = %v, want ErrSnapshotNotFound", err)
			}

			for _, blob := range [][]byte{[]byte("first"), []byte("second, longer image")} {
				if err := bs.Save(ctx, "snap", blob); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				got, err := bs.Load(ctx, "snap")
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				if !bytes.Equal(got, blob) {
					t.Errorf("Load() = %q, want %q", got, blob)
				}
			}
		})
	}
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	f, _ := NewFile(fsys, "/data")
	ctx := context.Background()

	f.Save(ctx, "sqlite_db_binary", []byte("image"))
	f.Save(ctx, "sqlite_db_binary.corrupt", []byte("bad"))

	entries, err := afero.ReadDir(fsys, "/data")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want exactly the two snapshot files", names)
	}
}

func TestFileRejectsPathKeys(t *testing.T) {
	f, _ := NewFile(afero.NewMemMapFs(), "/data")
	for _, key := range []string{"", "..", "../escape", "a/b"} {
		if err := f.Save(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Save(%q) succeeded, want error", key)
		}
	}
}
