package export

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"genomecore/internal/blob"
)

// Archive packs an exported seed directory into a tar.gz object and stores it
// under key. The object is immutable; storing an existing key fails.
func Archive(ctx context.Context, dir string, store blob.Store, key string) (blob.Info, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr := &tar.Header{
			Name:    filepath.ToSlash(rel),
			Mode:    0o644,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive %s: %w", dir, err)
	}
	if err := tw.Close(); err != nil {
		return blob.Info{}, fmt.Errorf("archive %s: %w", dir, err)
	}
	if err := gz.Close(); err != nil {
		return blob.Info{}, fmt.Errorf("archive %s: %w", dir, err)
	}

	info, err := store.Put(ctx, key, &buf, blob.PutOptions{
		ContentType: "application/gzip",
		Metadata:    map[string]string{"source_dir": filepath.Base(dir)},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive %s: store %s: %w", dir, key, err)
	}
	return info, nil
}
