package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"golang.org/x/image/draw"
)

type thumbnailRequest struct {
	uri      fyne.URI
	callback func(*canvas.Image)
}

// ThumbnailManager decodes and scales gallery images in the background.
// Scaled images are kept in memory and, for local files, in a disk cache
// that survives restarts.
type ThumbnailManager struct {
	cache    sync.Map // map[string]*canvas.Image
	requests []thumbnailRequest
	reqLock  sync.Mutex
	reqCond  *sync.Cond
	cacheDir string
}

var (
	MaxCacheSize  int64 = 500 * 1024 * 1024 // 500MB
	MaxCacheFiles int   = 10000

	// ThumbnailSize is the edge of the square thumbnails, sized for cells
	// on high density displays.
	ThumbnailSize = 256
)

const (
	maxPendingRequests = 100
	thumbnailWorkers   = 4
)

var (
	thumbnails     *ThumbnailManager
	thumbnailsOnce sync.Once
)

// GetThumbnailManager returns the shared manager, starting its workers on
// first use.
func GetThumbnailManager() *ThumbnailManager {
	thumbnailsOnce.Do(func() {
		cacheDir := ""
		if userCache, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(userCache, "xgallery")
		}
		thumbnails = newThumbnailManager(cacheDir)
		for range thumbnailWorkers {
			go thumbnails.worker()
		}
	})
	return thumbnails
}

func newThumbnailManager(cacheDir string) *ThumbnailManager {
	m := &ThumbnailManager{
		requests: make([]thumbnailRequest, 0, maxPendingRequests),
		cacheDir: cacheDir,
	}
	m.reqCond = sync.NewCond(&m.reqLock)

	if m.cacheDir != "" {
		if err := os.MkdirAll(m.cacheDir, 0o755); err != nil {
			fyne.LogError("could not create thumbnail cache", err)
			m.cacheDir = ""
		} else {
			go m.cleanupCache()
		}
	}
	return m
}

// LoadMemoryOnly returns a thumbnail already held in memory, or nil.
func (m *ThumbnailManager) LoadMemoryOnly(uri fyne.URI) *canvas.Image {
	if cached, ok := m.cache.Load(uri.String()); ok {
		return cached.(*canvas.Image)
	}
	return nil
}

// Load calls back with the thumbnail for uri. Memory and disk hits are
// delivered synchronously; anything else is queued for the workers. When
// the queue is full the oldest request is dropped, since it belongs to a
// slot that has most likely been recycled already.
func (m *ThumbnailManager) Load(uri fyne.URI, callback func(*canvas.Image)) {
	if uri == nil || !isSupportedImage(strings.ToLower(uri.Extension())) {
		return
	}

	if img := m.LoadMemoryOnly(uri); img != nil {
		callback(img)
		return
	}
	if img := m.loadFromDisk(uri); img != nil {
		callback(img)
		return
	}

	m.reqLock.Lock()
	if len(m.requests) >= maxPendingRequests {
		m.requests = m.requests[1:]
	}
	m.requests = append(m.requests, thumbnailRequest{uri: uri, callback: callback})
	m.reqCond.Signal()
	m.reqLock.Unlock()
}

// Prewarm moves disk cached thumbnails of uris into memory in the
// background so the first screen of a gallery shows without flicker.
func (m *ThumbnailManager) Prewarm(uris []fyne.URI) {
	if m.cacheDir == "" {
		return
	}

	go func() {
		for _, uri := range uris {
			if m.LoadMemoryOnly(uri) != nil {
				continue
			}
			m.loadFromDisk(uri)
			// keep the disk quiet while the user scrolls
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func (m *ThumbnailManager) loadFromDisk(uri fyne.URI) *canvas.Image {
	path, ok := m.diskCachePath(uri)
	if !ok {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return m.store(uri, img)
}

func (m *ThumbnailManager) store(uri fyne.URI, img image.Image) *canvas.Image {
	canvasImg := canvas.NewImageFromImage(img)
	canvasImg.FillMode = canvas.ImageFillContain
	m.cache.Store(uri.String(), canvasImg)
	return canvasImg
}

func (m *ThumbnailManager) worker() {
	for {
		m.reqLock.Lock()
		for len(m.requests) == 0 {
			m.reqCond.Wait()
		}
		last := len(m.requests) - 1
		req := m.requests[last]
		m.requests = m.requests[:last]
		m.reqLock.Unlock()

		if img := m.LoadMemoryOnly(req.uri); img != nil {
			req.callback(img)
			continue
		}

		src, err := decodeURI(req.uri)
		if err != nil {
			fyne.LogError("could not decode "+req.uri.Name(), err)
			continue
		}

		thumb := scaleToSquare(src, ThumbnailSize)
		if thumb == nil {
			continue
		}
		m.saveToDisk(req.uri, thumb)
		req.callback(m.store(req.uri, thumb))
	}
}

func (m *ThumbnailManager) saveToDisk(uri fyne.URI, img image.Image) {
	path, ok := m.diskCachePath(uri)
	if !ok {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		fyne.LogError("could not write thumbnail cache", err)
	}
}

func (m *ThumbnailManager) diskCachePath(uri fyne.URI) (string, bool) {
	if m.cacheDir == "" || uri.Scheme() != "file" {
		return "", false
	}
	key, err := cacheKey(uri.Path())
	if err != nil {
		return "", false
	}
	return filepath.Join(m.cacheDir, key+".jpg"), true
}

func decodeURI(uri fyne.URI) (image.Image, error) {
	r, err := storage.Reader(uri)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	return img, err
}

// scaleToSquare letterboxes src onto a black square of the given edge,
// keeping its aspect ratio. It returns nil for an empty image.
func scaleToSquare(src image.Image, size int) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: image.Black}, image.Point{}, draw.Src)

	ratio := float64(w) / float64(h)
	scaledW, scaledH := size, size
	if ratio > 1 {
		scaledH = int(float64(size) / ratio)
	} else {
		scaledW = int(float64(size) * ratio)
	}

	x := (size - scaledW) / 2
	y := (size - scaledH) / 2
	draw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+scaledW, y+scaledH), src, bounds, draw.Over, nil)
	return dst
}

func isSupportedImage(ext string) bool {
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

// cacheKey identifies a file by path, modification time, size and the
// first 32KB of content.
func cacheKey(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(absPath))
	h.Write([]byte(info.ModTime().String()))
	fmt.Fprintf(h, "%d", info.Size())

	f, err := os.Open(absPath)
	if err == nil {
		defer f.Close()
		if _, err := io.CopyN(h, f, 32*1024); err != nil && err != io.EOF {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// cleanupCache evicts the oldest cached thumbnails once the cache exceeds
// MaxCacheSize or MaxCacheFiles, down to 80% of both limits.
func (m *ThumbnailManager) cleanupCache() {
	if m.cacheDir == "" {
		return
	}

	entries, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return
	}

	type cachedFile struct {
		name string
		size int64
		time time.Time
	}

	var files []cachedFile
	var totalSize int64
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jpg" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, cachedFile{name: e.Name(), size: info.Size(), time: info.ModTime()})
		totalSize += info.Size()
	}

	if totalSize <= MaxCacheSize && len(files) <= MaxCacheFiles {
		return
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].time.Before(files[j].time)
	})

	sizeTarget := int64(float64(MaxCacheSize) * 0.8)
	countTarget := int(float64(MaxCacheFiles) * 0.8)
	remaining := len(files)
	for _, f := range files {
		if totalSize <= sizeTarget && remaining <= countTarget {
			break
		}
		if err := os.Remove(filepath.Join(m.cacheDir, f.name)); err != nil {
			continue
		}
		totalSize -= f.size
		remaining--
	}
}
