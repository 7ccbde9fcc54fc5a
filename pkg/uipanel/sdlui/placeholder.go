package sdlui

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"math"
	"time"
	"unsafe"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"
)

//go:embed assets/spinner.svg
var spinnerSVG []byte

// spinnerTurn is the time of one full spinner revolution.
const spinnerTurn = time.Second

// RasterizeSVG renders an SVG document into a size x size RGBA image.
func RasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("rasterize svg: invalid size %d", size)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return rgba, nil
}

// textureFromRGBA uploads img. image.RGBA stores R,G,B,A bytes, which SDL
// calls ABGR8888 on little endian machines.
func textureFromRGBA(r *sdl.Renderer, img *image.RGBA) (*sdl.Texture, error) {
	b := img.Bounds()
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(b.Dx()), int32(b.Dy()), 32, int32(img.Stride),
		sdl.PIXELFORMAT_ABGR8888,
	)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	defer surface.Free()

	tex, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return tex, nil
}

// LoadingPlaceholder is a uipanel.Placeholder: a rotating spinner with a
// localized "Loading" label, centered in the window.
type LoadingPlaceholder struct {
	label   string
	spinner *image.RGBA
	font    *ttf.Font
	color   sdl.Color

	visible *atomic.Bool
	shownAt *atomic.Int64

	textures *textureCache[*sdl.Texture]
}

// NewLoadingPlaceholder rasterizes the spinner at size pixels. font may be
// nil, in which case no label is drawn.
func NewLoadingPlaceholder(panel string, loc *Localizer, font *ttf.Font, size int) (*LoadingPlaceholder, error) {
	spinner, err := RasterizeSVG(spinnerSVG, size)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = DefaultLocalizer()
	}

	return &LoadingPlaceholder{
		label:    loc.Loading(panel),
		spinner:  spinner,
		font:     font,
		color:    GetTheme().TextColor,
		visible:  atomic.NewBool(false),
		shownAt:  atomic.NewInt64(0),
		textures: newTextureCache[*sdl.Texture](2),
	}, nil
}

func (p *LoadingPlaceholder) Show() {
	p.shownAt.Store(time.Now().UnixNano())
	p.visible.Store(true)
}

func (p *LoadingPlaceholder) Hide() {
	p.visible.Store(false)
}

func (p *LoadingPlaceholder) Visible() bool { return p.visible.Load() }

// Label returns the localized text under the spinner.
func (p *LoadingPlaceholder) Label() string { return p.label }

// Angle returns the spinner rotation in degrees at now.
func (p *LoadingPlaceholder) Angle(now time.Time) float64 {
	elapsed := now.Sub(time.Unix(0, p.shownAt.Load()))
	turns := float64(elapsed) / float64(spinnerTurn)
	return math.Mod(turns, 1) * 360
}

// Draw is a DrawFunc. Textures are created on first use.
func (p *LoadingPlaceholder) Draw(r *sdl.Renderer, bounds sdl.Rect) {
	if !p.Visible() {
		return
	}

	spinner, ok := p.texture("spinner", func() (*sdl.Texture, error) {
		return textureFromRGBA(r, p.spinner)
	})
	if !ok {
		return
	}

	size := int32(p.spinner.Bounds().Dx())
	dst := sdl.Rect{
		X: bounds.X + (bounds.W-size)/2,
		Y: bounds.Y + (bounds.H-size)/2,
		W: size,
		H: size,
	}
	r.CopyEx(spinner, nil, &dst, p.Angle(time.Now()), nil, sdl.FLIP_NONE)

	if p.font == nil {
		return
	}
	label, ok := p.texture("label", func() (*sdl.Texture, error) {
		surface, err := p.font.RenderUTF8Blended(p.label, p.color)
		if err != nil {
			return nil, err
		}
		defer surface.Free()
		return r.CreateTextureFromSurface(surface)
	})
	if !ok {
		return
	}
	_, _, w, h, err := label.Query()
	if err != nil {
		return
	}
	r.Copy(label, nil, &sdl.Rect{X: bounds.X + (bounds.W-w)/2, Y: dst.Y + size + size/4, W: w, H: h})
}

func (p *LoadingPlaceholder) texture(key string, create func() (*sdl.Texture, error)) (*sdl.Texture, bool) {
	if tex, ok := p.textures.Get(key); ok {
		return tex, true
	}
	tex, err := create()
	if err != nil {
		return nil, false
	}
	p.textures.Set(key, tex)
	return tex, true
}

// Destroy releases the placeholder's textures.
func (p *LoadingPlaceholder) Destroy() {
	p.textures.Destroy()
}
