package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/filex"
)

// DiskVolume keeps content as flat files under a root directory. The
// reference is the absolute file path.
type DiskVolume struct {
	root string
}

func NewDiskVolume(root string) *DiskVolume {
	return &DiskVolume{root: root}
}

func (v *DiskVolume) Save(_ context.Context, data []byte) (string, error) {
	dir, err := filex.EnsureDir(v.root)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	// The pipeline's consistency contract needs the bytes on disk before
	// metadata commits, so flush before returning.
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

func (v *DiskVolume) Load(_ context.Context, ref, sizeVariant string) ([]byte, error) {
	data, err := os.ReadFile(variantRef(ref, sizeVariant))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}
