package gallery

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
)

func TestThumbnailManager_CacheKey(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "test.png")
	_ = os.WriteFile(filePath, make([]byte, 100*1024), 0644)

	key1, err := cacheKey(filePath)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	key2, err := cacheKey(filePath)
	if err != nil {
		t.Fatalf("Failed to generate key2: %v", err)
	}
	if key1 != key2 {
		t.Errorf("Keys should be identical for same file: %s != %s", key1, key2)
	}

	later := time.Now().Add(time.Minute)
	_ = os.Chtimes(filePath, later, later)

	key3, err := cacheKey(filePath)
	if err != nil {
		t.Fatalf("Failed to generate key3: %v", err)
	}
	if key3 == key1 {
		t.Error("Key should change when modification time changes")
	}

	f, _ := os.OpenFile(filePath, os.O_WRONLY, 0644)
	f.Write([]byte("change"))
	f.Close()
	_ = os.Chtimes(filePath, later, later)

	key4, err := cacheKey(filePath)
	if err != nil {
		t.Fatalf("Failed to generate key4: %v", err)
	}
	if key4 == key3 {
		t.Error("Key should change when first 32KB content changes")
	}

	if _, err := cacheKey(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestThumbnailManager_CleanupCache(t *testing.T) {
	tmpDir := t.TempDir()
	tm := &ThumbnailManager{
		cacheDir: tmpDir,
	}

	oldSize := MaxCacheSize
	oldFiles := MaxCacheFiles
	MaxCacheSize = 100
	MaxCacheFiles = 5
	defer func() {
		MaxCacheSize = oldSize
		MaxCacheFiles = oldFiles
	}()

	for i := range 10 {
		path := filepath.Join(tmpDir, string(rune('a'+i))+".jpg")
		_ = os.WriteFile(path, []byte("fake image data"), 0644)
		mtime := time.Now().Add(time.Duration(i-100) * time.Minute)
		_ = os.Chtimes(path, mtime, mtime)
	}

	tm.cleanupCache()

	files, _ := os.ReadDir(tmpDir)
	if len(files) > 4 {
		t.Errorf("Cleanup failed to evict enough files. Got %d, expected <= 4", len(files))
	}
	for _, f := range files {
		if f.Name() < "g.jpg" {
			t.Errorf("Cleanup deleted newest file or kept oldest: %s", f.Name())
		}
	}
}

func TestScaleToSquare_Letterbox(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 320, 180))
	for y := range 180 {
		for x := range 320 {
			src.Set(x, y, red)
		}
	}

	thumb := scaleToSquare(src, 128)
	if b := thumb.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("Expected 128x128 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}

	r, g, b, _ := thumb.At(64, 5).RGBA()
	if r > 1000 || g > 1000 || b > 1000 {
		t.Errorf("Expected black top bar, got R:%d G:%d B:%d", r, g, b)
	}

	r, g, b, _ = thumb.At(64, 64).RGBA()
	if r < 50000 || g > 10000 || b > 10000 {
		t.Errorf("Expected red center, got R:%d G:%d B:%d", r, g, b)
	}

	if scaleToSquare(image.NewRGBA(image.Rect(0, 0, 0, 10)), 128) != nil {
		t.Error("Expected nil for an empty image")
	}
}

func TestThumbnailManager_SkipsUnsupported(t *testing.T) {
	tm := newThumbnailManager("")

	called := false
	tm.Load(storage.NewFileURI("/tmp/notes.txt"), func(_ *canvas.Image) {
		called = true
	})
	if called {
		t.Fatal("expected no callback for an unsupported file")
	}
	if len(tm.requests) != 0 {
		t.Fatalf("expected nothing queued, got %d requests", len(tm.requests))
	}
}

func TestThumbnailManager_DropsOldestRequest(t *testing.T) {
	tm := newThumbnailManager("")

	for i := range maxPendingRequests + 1 {
		tm.Load(storage.NewFileURI(filepath.Join("/tmp/gallery", string(rune('a'+i%26))+".png")), func(*canvas.Image) {})
	}
	if len(tm.requests) != maxPendingRequests {
		t.Fatalf("expected %d queued requests, got %d", maxPendingRequests, len(tm.requests))
	}
}
