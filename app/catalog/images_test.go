package catalog_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/storage"
)

// memDisk is an in-memory storage.Disk for mirror tests.
type memDisk struct {
	mu      sync.Mutex
	files   map[string][]byte
	failPut bool
}

func newMemDisk() *memDisk {
	return &memDisk{files: map[string][]byte{}}
}

func (d *memDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failPut {
		return errors.New("disk full")
	}
	d.files[path] = content
	return nil
}

func (d *memDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (d *memDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *memDisk) URL(path string) string { return "http://cdn.test/" + path }

func (d *memDisk) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

func useMemDisk(t *testing.T) *memDisk {
	t.Helper()
	d := newMemDisk()
	storage.RegisterDisk("local", d)
	return d
}

func TestImageMirrorRewritesToDiskURL(t *testing.T) {
	disk := useMemDisk(t)

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	products := []models.Product{{ID: "1", Name: "Hammer", Image: srv.URL + "/hammer.png"}}

	out := catalog.ImageMirror(products)
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0].Image, "http://cdn.test/products/"), out[0].Image)
	assert.True(t, strings.HasSuffix(out[0].Image, ".png"), out[0].Image)
	assert.Equal(t, 1, disk.count())

	// Same URL again: the mirrored copy is reused, no second download.
	out = catalog.ImageMirror([]models.Product{{ID: "1", Image: srv.URL + "/hammer.png"}})
	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, 1, disk.count())
	assert.True(t, strings.HasPrefix(out[0].Image, "http://cdn.test/products/"))
}

func TestImageMirrorDownloadFailureKeepsRemoteURL(t *testing.T) {
	useMemDisk(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	remote := srv.URL + "/gone.png"
	out := catalog.ImageMirror([]models.Product{{ID: "1", Image: remote}})

	require.Len(t, out, 1)
	assert.Equal(t, remote, out[0].Image, "failed mirror must leave the remote URL in place")
}

func TestImageMirrorDiskFailureKeepsRemoteURL(t *testing.T) {
	disk := useMemDisk(t)
	disk.failPut = true

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	remote := srv.URL + "/hammer.png"
	out := catalog.ImageMirror([]models.Product{{ID: "1", Image: remote}})

	require.Len(t, out, 1)
	assert.Equal(t, remote, out[0].Image)
	assert.Equal(t, 0, disk.count())
}

func TestImageMirrorSkipsNonHTTPAndEmpty(t *testing.T) {
	disk := useMemDisk(t)

	out := catalog.ImageMirror([]models.Product{
		{ID: "1", Image: ""},
		{ID: "2", Image: "/relative/path.png"},
		{ID: "3", Image: "ftp://example.test/x.png"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "", out[0].Image)
	assert.Equal(t, "/relative/path.png", out[1].Image)
	assert.Equal(t, "ftp://example.test/x.png", out[2].Image)
	assert.Equal(t, 0, disk.count())
}
