package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"time"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/httpx"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/storage"
)

// ImageMirror is a ProductHook that copies remote product images onto the
// configured storage disk and rewrites image references to the mirrored
// URL. Any failure (bad URL, download error, disk error) leaves the
// original remote URL in place — the storefront still renders, just from
// the remote host.
func ImageMirror(products []models.Product) []models.Product {
	disk := storage.Default()

	for i, p := range products {
		if p.Image == "" {
			continue
		}

		key, ok := mirrorKey(p.Image)
		if !ok {
			continue
		}

		if !disk.Exists(key) {
			if err := download(p.Image, key, disk); err != nil {
				logger.Warn("image mirror failed", "url", p.Image, "error", err)
				continue
			}
		}
		products[i].Image = disk.URL(key)
	}
	return products
}

// mirrorKey derives a stable disk path from an image URL, so re-mirroring
// the same URL is a no-op across reloads.
func mirrorKey(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	sum := sha256.Sum256([]byte(raw))
	return "products/" + hex.EncodeToString(sum[:8]) + path.Ext(u.Path), true
}

func download(src, key string, disk storage.Disk) error {
	resp, err := httpx.Get(src).Timeout(10 * time.Second).Send()
	if err != nil {
		return err
	}
	if err := resp.Throw(); err != nil {
		return err
	}
	return disk.Put(key, resp.Raw)
}
