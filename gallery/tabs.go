package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// filterTabs is the All / Odd / Even strip above the grid. The tabs share
// the width equally.
type filterTabs struct {
	buttons  map[Filter]*widget.Button
	selected Filter
	content  *fyne.Container
}

func newFilterTabs(selected Filter, onSelected func(Filter)) *filterTabs {
	t := &filterTabs{
		buttons:  make(map[Filter]*widget.Button, 3),
		selected: selected,
	}

	labels := []struct {
		filter Filter
		text   string
	}{
		{FilterAll, lang.L("All")},
		{FilterOdd, lang.L("Odd")},
		{FilterEven, lang.L("Even")},
	}

	objects := make([]fyne.CanvasObject, 0, len(labels))
	for _, l := range labels {
		filter := l.filter
		btn := widget.NewButton(l.text, func() {
			if onSelected != nil {
				onSelected(filter)
			}
		})
		t.buttons[filter] = btn
		objects = append(objects, btn)
	}

	grid := newFlexGrid(GridConfig{
		Fit:      FixedRows,
		Rows:     1,
		CellSize: fyne.NewSize(0, objects[0].MinSize().Height),
		Spacing:  fyne.NewSquareSize(theme.Padding()),
		FitX:     true,
	})
	t.content = container.New(grid, objects...)
	t.setSelected(selected)
	return t
}

func (t *filterTabs) setSelected(filter Filter) {
	t.selected = filter
	for f, btn := range t.buttons {
		if f == filter {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func loadFilterPref() Filter {
	app := fyne.CurrentApp()
	if app == nil {
		return FilterAll
	}
	switch f := Filter(app.Preferences().Int(galleryFilterKey)); f {
	case FilterOdd, FilterEven:
		return f
	default:
		return FilterAll
	}
}

func saveFilterPref(filter Filter) {
	if app := fyne.CurrentApp(); app != nil {
		app.Preferences().SetInt(galleryFilterKey, int(filter))
	}
}
