//go:build !flatpak || windows || android || ios || wasm || js

package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// ChooseFolder asks the user for an image folder. callback receives a nil
// folder when the user cancels.
func ChooseFolder(parent fyne.Window, callback func(fyne.ListableURI, error)) {
	dialog.ShowFolderOpen(callback, parent)
}
