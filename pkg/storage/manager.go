package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shashiranjanraj/automart/config"
	"github.com/shashiranjanraj/automart/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the configured disks. The local disk is always available;
// the S3 disk only when S3_BUCKET is set.
func Connect(ctx context.Context) error {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk(ctx)
		if err != nil {
			if defaultDisk == "s3" {
				return err
			}
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		return fmt.Errorf("storage: default disk %q is not configured", defaultDisk)
	}
	return nil
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	defer managerMu.RUnlock()

	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// RegisterDisk plugs in a Disk under name, optionally as the default.
// Tests use it with a temp-dir local disk.
func RegisterDisk(name string, d Disk, makeDefault bool) {
	managerMu.Lock()
	disks[name] = d
	if makeDefault {
		defaultDisk = name
	}
	managerMu.Unlock()
}

// Default returns the disk named by STORAGE_DISK.
func Default() (Disk, error) {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Put writes to the default disk.
func Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	d, err := Default()
	if err != nil {
		return err
	}
	return d.Put(ctx, path, r, contentType)
}

// Delete removes path from the default disk.
func Delete(ctx context.Context, path string) error {
	d, err := Default()
	if err != nil {
		return err
	}
	return d.Delete(ctx, path)
}

// URL resolves a stored path on the default disk. Absolute URLs (seed data
// pointing at external images) pass through unchanged; "" stays "".
func URL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	d, err := Default()
	if err != nil {
		return path
	}
	return d.URL(path)
}
