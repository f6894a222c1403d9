package render

import (
	"image/color"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/beetlebugorg/geoingest/internal/ingest"
)

// dots per millimetre of the PNG output; canvas sizes are in millimetres
const resolution = 4.0

// Layer is a set of paths drawn with one style
type Layer struct {
	Paths []*ingest.RenderPath
	Style Style
}

// Scene is everything drawn in one preview, bottom layer first
type Scene struct {
	Layers    []Layer
	Locations []ingest.Location
}

// Visible filters paths to those whose bounds intersect the view.
func Visible(v *ViewState, paths []*ingest.RenderPath) []*ingest.RenderPath {
	vb := v.Bound()
	out := make([]*ingest.RenderPath, 0, len(paths))
	for _, p := range paths {
		if p == nil || p.Empty() {
			continue
		}
		if p.Bound().Intersects(vb) {
			out = append(out, p)
		}
	}
	return out
}

// toCanvasPath copies a RenderPath into a canvas path in map units.
func toCanvasPath(p *ingest.RenderPath) *canvas.Path {
	cp := &canvas.Path{}
	p.Each(func(c ingest.PathCmd) {
		switch c.Op {
		case ingest.OpMoveTo:
			cp.MoveTo(c.X, c.Y)
		case ingest.OpLineTo:
			cp.LineTo(c.X, c.Y)
		case ingest.OpClose:
			cp.Close()
		}
	})
	return cp
}

// WritePNG draws scene as seen through v and writes a PNG to path.
// Paths are read only.
func WritePNG(path string, scene Scene, v *ViewState) error {
	wmm := float64(v.Width) / resolution
	hmm := float64(v.Height) / resolution
	c := canvas.New(wmm, hmm)
	ctx := canvas.NewContext(c)
	// holes are separate subpaths whose winding is not normalised
	ctx.SetFillRule(canvas.EvenOdd)

	ctx.SetFillColor(background)
	ctx.DrawPath(0, 0, canvas.Rectangle(wmm, hmm))

	// map units to millimetres, y up in both
	b := v.Bound()
	mmPerUnit := 1 / (v.UnitsPerPixel * resolution)
	ctx.SetView(canvas.Identity.Scale(mmPerUnit, mmPerUnit).Translate(-b.Min[0], -b.Min[1]))

	for _, layer := range scene.Layers {
		visible := Visible(v, layer.Paths)
		if len(visible) == 0 {
			continue
		}
		ctx.SetFillColor(layer.Style.Fill)
		if layer.Style.Width > 0 {
			ctx.SetStrokeColor(layer.Style.Stroke)
			ctx.SetStrokeWidth(layer.Style.Width / resolution)
		} else {
			ctx.SetStrokeColor(color.RGBA{})
		}
		for _, p := range visible {
			ctx.DrawPath(0, 0, toCanvasPath(p))
		}
	}

	size := 3 * v.UnitsPerPixel
	ctx.SetStrokeColor(color.RGBA{})
	ctx.SetFillColor(locationStyle.Fill)
	for _, l := range scene.Locations {
		if !b.Contains(orb.Point{l.X, l.Y}) {
			continue
		}
		ctx.DrawPath(l.X-size/2, l.Y-size/2, canvas.Rectangle(size, size))
	}

	return renderers.Write(path, c, canvas.DPMM(resolution))
}
