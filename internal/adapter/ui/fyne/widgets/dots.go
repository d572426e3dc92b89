package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const dotSize = 8

// Dots is a row of position indicators, one highlighted.
type Dots struct {
	widget.BaseWidget

	row    *fyne.Container
	dots   []*canvas.Circle
	active int
}

// NewDots creates an empty dots row.
func NewDots() *Dots {
	d := &Dots{row: container.NewHBox()}
	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget.
func (d *Dots) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewCenter(d.row))
}

// Set rebuilds the row with count dots, reusing existing ones, and highlights active.
func (d *Dots) Set(count, active int) {
	for len(d.dots) < count {
		dot := canvas.NewCircle(theme.Color(theme.ColorNameDisabled))
		dot.Resize(fyne.NewSize(dotSize, dotSize))
		d.dots = append(d.dots, dot)
	}
	d.dots = d.dots[:count]
	d.active = active

	objects := make([]fyne.CanvasObject, count)
	for i, dot := range d.dots {
		if i == active {
			dot.FillColor = theme.Color(theme.ColorNamePrimary)
		} else {
			dot.FillColor = theme.Color(theme.ColorNameDisabled)
		}
		objects[i] = container.NewGridWrap(fyne.NewSize(dotSize, dotSize), dot)
	}
	d.row.Objects = objects
	d.row.Refresh()
}

// Count returns the number of dots.
func (d *Dots) Count() int {
	return len(d.dots)
}

// Active returns the highlighted dot, meaningful only when Count is positive.
func (d *Dots) Active() int {
	return d.active
}
