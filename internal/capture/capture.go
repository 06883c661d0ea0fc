// Package capture rasterizes previews without a browser.
//
// The story HTML is converted to Markdown text and drawn line by line with a
// fixed-width bitmap font. The result is a faithful record of the content and
// structure of a variant, not a pixel-exact browser screenshot.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// Palette of the rendered image.
var (
	lightBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lightForeground = color.RGBA{R: 0x1f, G: 0x23, B: 0x28, A: 0xff}
	darkBackground  = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	darkForeground  = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	checkerTone     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	shadowTone      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x40}
)

// TextCapturer implements showcase.Capturer.
type TextCapturer struct {
	// Padding around the content, in pixels at scale 1
	Padding int
	// MaxColumns wraps longer lines
	MaxColumns int
}

// New returns a TextCapturer with default layout settings.
func New() *TextCapturer {
	return &TextCapturer{Padding: 16, MaxColumns: 100}
}

var _ showcase.Capturer = (*TextCapturer)(nil)

// Capture draws the preview and encodes it as PNG.
func (c *TextCapturer) Capture(ctx context.Context, p showcase.Preview, scale int) ([]byte, error) {
	text, err := Text(p)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := c.draw(wrap(text, c.MaxColumns), p)
	if scale > 1 {
		img = upscale(img, scale)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Text converts the preview's HTML to Markdown.
func Text(p showcase.Preview) (string, error) {
	if msg := p.Message(); msg != "" {
		return msg, nil
	}
	md, err := htmltomarkdown.ConvertString(p.HTML)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(md), nil
}

func (c *TextCapturer) draw(lines []string, p showcase.Preview) *image.RGBA {
	face := basicfont.Face7x13
	lineHeight := face.Height
	charWidth := face.Advance

	cols := 1
	for _, l := range lines {
		cols = max(cols, len([]rune(l)))
	}
	pad := max(c.Padding, 0)
	w := cols*charWidth + 2*pad
	h := max(len(lines), 1)*lineHeight + 2*pad

	bg, fg := lightBackground, lightForeground
	if p.Dark {
		bg, fg = darkBackground, darkForeground
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if p.Flags.ShowBackground {
		drawChecker(img, bg)
	}
	if p.Flags.ShadowBoxActive {
		drawShadowBox(img, pad)
	}

	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(pad, pad+(i+1)*lineHeight-face.Descent)
		d.DrawString(line)
	}
	return img
}

func drawChecker(img *image.RGBA, bg color.RGBA) {
	const cell = 8
	b := img.Bounds()
	tone := image.NewUniform(checkerTone)
	if bg == darkBackground {
		tone = image.NewUniform(color.RGBA{R: 0x2a, G: 0x2a, B: 0x32, A: 0xff})
	}
	for y := b.Min.Y; y < b.Max.Y; y += cell {
		for x := b.Min.X; x < b.Max.X; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				continue
			}
			draw.Draw(img, image.Rect(x, y, x+cell, y+cell).Intersect(b), tone, image.Point{}, draw.Src)
		}
	}
}

// drawShadowBox drops a soft shadow under the content box.
func drawShadowBox(img *image.RGBA, pad int) {
	b := img.Bounds()
	inner := image.Rect(b.Min.X+pad/2, b.Min.Y+pad/2, b.Max.X-pad/2, b.Max.Y-pad/2)
	layer := image.NewNRGBA(b)
	draw.Draw(layer, inner.Add(image.Pt(3, 3)).Intersect(b), image.NewUniform(shadowTone), image.Point{}, draw.Src)
	draw.Draw(img, b, imaging.Blur(layer, 2), image.Point{}, draw.Over)
}

func upscale(img *image.RGBA, scale int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// wrap splits text into lines no longer than cols runes. Tabs become spaces
// since the bitmap font has no tab stops.
func wrap(text string, cols int) []string {
	text = strings.ReplaceAll(text, "\t", "    ")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for cols > 0 && len(runes) > cols {
			out = append(out, string(runes[:cols]))
			runes = runes[cols:]
		}
		out = append(out, string(runes))
	}
	return out
}
