package gallery

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// LoadImages lists the images directly inside dir, sorted by name.
// Sub folders and files of other types are skipped.
func LoadImages(dir fyne.ListableURI) ([]fyne.URI, error) {
	if dir == nil {
		return nil, nil
	}
	children, err := dir.List()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir.Name(), err)
	}

	images := make([]fyne.URI, 0, len(children))
	for _, uri := range children {
		if isDir, _ := storage.CanList(uri); isDir {
			continue
		}
		if !isSupportedImage(strings.ToLower(uri.Extension())) {
			continue
		}
		images = append(images, uri)
	}

	sort.SliceStable(images, func(i, j int) bool {
		return strings.ToLower(images[i].Name()) < strings.ToLower(images[j].Name())
	})
	return images, nil
}
