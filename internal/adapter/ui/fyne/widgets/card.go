// Package widgets provides custom Fyne widgets for the Coverflow carousel.
package widgets

import (
	"bytes"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	xwidget "fyne.io/x/fyne/widget"
)

var gifMagic = []byte("GIF8")

// Card shows one slide: its artwork above its caption.
// Animated GIF artwork plays only while the card is active.
// A secondary tap (right-click) reports a completed reveal gesture.
type Card struct {
	widget.BaseWidget

	art     *canvas.Image
	gif     *xwidget.AnimatedGif
	playing bool
	artBox  *fyne.Container
	caption *widget.Label
	frame   *canvas.Rectangle

	active         bool
	onSecondaryTap func()
}

// NewCard creates a card with the given caption and encoded image (may be empty).
func NewCard(caption string, imageData []byte, onSecondaryTap func()) *Card {
	c := &Card{
		art:            canvas.NewImageFromResource(theme.FileImageIcon()),
		caption:        widget.NewLabel(caption),
		frame:          canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		onSecondaryTap: onSecondaryTap,
	}
	c.art.FillMode = canvas.ImageFillContain
	c.artBox = container.NewStack(c.art)
	c.caption.Alignment = fyne.TextAlignCenter
	c.caption.Truncation = fyne.TextTruncateEllipsis
	c.frame.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	c.frame.StrokeWidth = 2
	c.SetImage(imageData)

	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *Card) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(nil, c.caption, nil, nil, c.artBox)
	return widget.NewSimpleRenderer(container.NewStack(c.frame, container.NewPadded(content)))
}

// SetCaption updates the caption text.
func (c *Card) SetCaption(text string) {
	c.caption.SetText(text)
}

// Caption returns the caption text.
func (c *Card) Caption() string {
	return c.caption.Text
}

// SetImage replaces the artwork. Undecodable data shows the placeholder icon.
func (c *Card) SetImage(data []byte) {
	c.pause()
	c.gif = nil

	if bytes.HasPrefix(data, gifMagic) {
		if g, err := xwidget.NewAnimatedGifFromResource(fyne.NewStaticResource("slide.gif", data)); err == nil {
			c.gif = g
			c.artBox.Objects = []fyne.CanvasObject{g}
			c.artBox.Refresh()
			if c.active {
				c.play()
			}
			return
		}
	}

	c.art.Image = nil
	c.art.Resource = theme.FileImageIcon()
	if len(data) > 0 {
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			c.art.Image = img
			c.art.Resource = nil
		}
	}
	c.artBox.Objects = []fyne.CanvasObject{c.art}
	c.artBox.Refresh()
}

// IsAnimated reports whether the artwork is an animated GIF.
func (c *Card) IsAnimated() bool {
	return c.gif != nil
}

// SetActive highlights the card and plays or pauses its animation.
func (c *Card) SetActive(active bool) {
	if c.active == active {
		return
	}
	c.active = active
	if active {
		c.frame.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		c.frame.StrokeColor = nil
	}
	c.frame.Refresh()

	if active {
		c.play()
	} else {
		c.pause()
	}
}

func (c *Card) play() {
	if c.gif != nil && !c.playing {
		c.gif.Start()
		c.playing = true
	}
}

func (c *Card) pause() {
	if c.gif != nil && c.playing {
		c.gif.Stop()
	}
	c.playing = false
}

// IsActive reports whether the card is highlighted.
func (c *Card) IsActive() bool {
	return c.active
}

// Release stops the artwork animation.
func (c *Card) Release() {
	c.pause()
}

// Tapped implements fyne.Tappable. Primary taps are ignored.
func (c *Card) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable (right-click).
func (c *Card) TappedSecondary(*fyne.PointEvent) {
	if c.onSecondaryTap != nil {
		c.onSecondaryTap()
	}
}
