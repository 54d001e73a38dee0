package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
)

func TestLoadImages_FiltersAndSorts(t *testing.T) {
	test.NewApp()

	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "notes.txt", "a.jpg", "C.jpeg"} {
		_ = os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	_ = os.Mkdir(filepath.Join(dir, "sub.png"), 0755)

	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		t.Fatalf("could not list temp dir: %v", err)
	}

	images, err := LoadImages(lister)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, uri := range images {
		names = append(names, uri.Name())
	}
	want := []string{"a.jpg", "b.PNG", "C.jpeg"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestLoadImages_NilFolder(t *testing.T) {
	images, err := LoadImages(nil)
	if err != nil || images != nil {
		t.Fatalf("expected nothing for a nil folder, got %v, %v", images, err)
	}
}
