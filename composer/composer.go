// Package composer renders the shareable support card: the candidate photo, localized
// slogans, an optional custom message and the supporter's details on a 1080x1920 canvas.
package composer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"

	"bar-council-campaign/models"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const maxCanvasSide = 8192

// Card is an encoded PNG support card
type Card struct {
	PNG    []byte
	Width  int
	Height int
}

// DataURI returns the card as an inline data URI
func (c *Card) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)
}

// Composer draws support cards. It keeps only immutable state and is safe for concurrent use.
type Composer struct {
	fonts  *FontSet
	loader PhotoLoader
	layout Layout
}

// New creates a Composer. A nil loader means only Render can be used.
func New(fonts *FontSet, loader PhotoLoader, layout Layout) *Composer {
	return &Composer{fonts: fonts, loader: loader, layout: layout}
}

// Compose loads the candidate photo and renders the card.
// The photo is fully decoded before anything is drawn.
func (c *Composer) Compose(ctx context.Context, req models.CardRequest) (*Card, error) {
	if c.loader == nil {
		return nil, &ImageLoadError{Ref: req.CandidatePhoto, Err: fmt.Errorf("no photo loader configured")}
	}
	photo, err := c.loader.Load(ctx, req.CandidatePhoto)
	if err != nil {
		return nil, err
	}
	return c.Render(req, photo)
}

// Plan runs the measuring pass only and returns where every line would be drawn
func (c *Composer) Plan(req models.CardRequest) (*Plan, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	faces := newFaceCache(c.fonts)
	defer faces.close()
	return buildPlan(c.layout, faces, req), nil
}

// Render draws the card with an already decoded photo
func (c *Composer) Render(req models.CardRequest, photo image.Image) (*Card, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, &ImageLoadError{Ref: req.CandidatePhoto, Err: fmt.Errorf("photo is nil")}
	}

	faces := newFaceCache(c.fonts)
	defer faces.close()

	plan := buildPlan(c.layout, faces, req)

	dc := gg.NewContext(c.layout.Width, c.layout.Height)
	c.drawBackground(dc)
	c.drawPhoto(dc, photo, plan.PhotoY)
	for _, line := range plan.Lines {
		drawLine(dc, faces, line, float64(c.layout.Width)/2)
	}
	drawLine(dc, faces, plan.Footer, float64(c.layout.Width)/2)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return &Card{PNG: buf.Bytes(), Width: c.layout.Width, Height: c.layout.Height}, nil
}

func (c *Composer) validate() error {
	l := c.layout
	if l.Width <= 0 || l.Height <= 0 || l.Width > maxCanvasSide || l.Height > maxCanvasSide {
		return &RenderContextError{Reason: fmt.Sprintf("invalid canvas size %dx%d", l.Width, l.Height)}
	}
	if l.PhotoSize <= 0 || l.PhotoSize > l.Width {
		return &RenderContextError{Reason: fmt.Sprintf("invalid photo size %d", l.PhotoSize)}
	}
	if c.fonts == nil || c.fonts.Regular == nil || c.fonts.Bold == nil {
		return &RenderContextError{Reason: "fonts are not loaded"}
	}
	return nil
}

func (c *Composer) drawBackground(dc *gg.Context) {
	w := float64(c.layout.Width)
	h := float64(c.layout.Height)

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, bgTop)
	grad.AddColorStop(1, bgBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(gold)
	dc.SetLineWidth(10)
	dc.DrawRectangle(5, 5, w-10, h-10)
	dc.Stroke()

	dc.SetColor(goldFaint)
	dc.SetLineWidth(2)
	dc.DrawRectangle(25, 25, w-50, h-50)
	dc.Stroke()
}

func (c *Composer) drawPhoto(dc *gg.Context, photo image.Image, top float64) {
	size := c.layout.PhotoSize
	cx := float64(c.layout.Width) / 2
	cy := top + float64(size)/2
	radius := float64(size)/2 - c.layout.PhotoInset

	square := imaging.Fill(photo, size, size, imaging.Center, imaging.Lanczos)

	dc.Push()
	dc.DrawCircle(cx, cy, radius)
	dc.Clip()
	dc.DrawImage(square, int(cx)-size/2, int(top))
	dc.Pop()

	dc.SetColor(gold)
	dc.SetLineWidth(c.layout.PhotoRingWidth)
	dc.DrawCircle(cx, cy, radius+c.layout.PhotoRingWidth/2)
	dc.Stroke()
}

func drawLine(dc *gg.Context, faces *faceCache, line PlacedLine, cx float64) {
	face := faces.face(line.Style.Size, line.Style.Bold)
	dc.SetFontFace(face)
	dc.SetColor(line.Style.Color)
	baseline := line.Y + fixedToFloat(face.Metrics().Ascent)
	dc.DrawStringAnchored(line.Text, cx, baseline, 0.5, 0)
}
