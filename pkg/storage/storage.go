// Package storage manages blob storage disks for the product image mirror.
// A "local" disk (filesystem, served under /storage/) always exists; an
// "s3" disk boots when S3_BUCKET is configured, covering any S3-compatible
// store (AWS, MinIO, R2, Spaces).
package storage

import (
	"fmt"
	"sync"

	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
)

// Disk is a minimal blob store: enough for mirroring images and serving
// them back by URL.
type Disk interface {
	Put(path string, content []byte) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	// URL returns the public URL the mirrored file is served from.
	URL(path string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDisk()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	if name == "" {
		name = "local"
	}
	return Use(name)
}
