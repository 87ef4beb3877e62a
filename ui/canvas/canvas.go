// Package canvas provides the interactive grid canvas with pan, zoom,
// painting, and region selection.
package canvas

import (
	"image"
	"image/draw"

	"pixelgrid/internal/app"
	"pixelgrid/internal/grid"
	"pixelgrid/internal/render"
	"pixelgrid/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.25
	maxZoom  = 8.0
	zoomStep = 1.25
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModePaint Mode = iota
	ModeSelect
)

// GridCanvas displays the pixel grid and routes pointer interaction to the
// application state.
type GridCanvas struct {
	widget.BaseWidget

	state *app.State

	raster *fynecanvas.Raster
	zoom   float64
	mode   Mode

	// Region selection in progress
	selecting bool
	dragStart geometry.Point

	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Cached base rendering; the overlay is drawn on a copy each frame so
	// selection and hover changes do not force a full cell redraw.
	base    *image.RGBA
	baseSig baseSignature

	onZoomChange func(zoom float64)
}

// baseSignature identifies one rendered base image. A draw with the same
// signature reuses the cached pixels.
type baseSignature struct {
	grid     *grid.Grid
	cellSize int
	width    int
	height   int
	visible  geometry.Rect
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *GridCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *GridCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *GridCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Hoverable = (*draggableContent)(nil)

func newDraggableContent(gc *GridCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: gc,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// gridPos converts a pointer position on the content to a grid position.
func (dc *draggableContent) gridPos(pos fyne.Position) geometry.Point {
	return geometry.ViewportToGrid(float64(pos.X), float64(pos.Y), dc.canvas.cellSize())
}

// Tapped paints or selects the cell under the pointer.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	// Reject clicks outside widget bounds; Fyne can deliver them during
	// layout transitions
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	p := dc.gridPos(ev.Position)
	switch dc.canvas.mode {
	case ModePaint:
		dc.canvas.state.ApplyColor(p)
	case ModeSelect:
		dc.canvas.state.Select(p)
	}
}

// TappedSecondary selects the cell under the pointer regardless of mode.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	dc.canvas.state.Select(dc.gridPos(ev.Position))
}

// Dragged extends a rubber-band region selection.
func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	p := dc.gridPos(ev.Position)
	if !dc.canvas.selecting {
		dc.canvas.selecting = true
		dc.canvas.dragStart = p
	}
	dc.canvas.state.SelectRegion(dc.canvas.dragStart, p)
}

func (dc *draggableContent) DragEnd() {
	dc.canvas.selecting = false
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// MouseIn implements desktop.Hoverable.
func (dc *draggableContent) MouseIn(ev *desktop.MouseEvent) {
	dc.canvas.state.SetHover(dc.gridPos(ev.Position))
}

// MouseMoved implements desktop.Hoverable.
func (dc *draggableContent) MouseMoved(ev *desktop.MouseEvent) {
	dc.canvas.state.SetHover(dc.gridPos(ev.Position))
}

// MouseOut implements desktop.Hoverable.
func (dc *draggableContent) MouseOut() {
	dc.canvas.state.ClearHover()
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewGridCanvas creates the grid canvas bound to the application state.
func NewGridCanvas(state *app.State) *GridCanvas {
	gc := &GridCanvas{
		state: state,
		zoom:  1.0,
		mode:  ModePaint,
	}

	gc.raster = fynecanvas.NewRaster(gc.draw)
	gc.raster.ScaleMode = fynecanvas.ImageScalePixels

	// Wrap raster in draggable content for mouse events
	gc.content = newDraggableContent(gc, gc.raster)

	// Zoomable scroll container (wheel = zoom, drag = select)
	gc.scroll = newZoomScroll(gc.content, gc)

	gc.ExtendBaseWidget(gc)
	gc.updateContentSize()

	state.On(app.EventGridLoaded, func(interface{}) {
		gc.invalidate()
		gc.updateContentSize()
	})
	state.On(app.EventGridChanged, func(interface{}) {
		gc.invalidate()
		gc.Refresh()
	})
	state.On(app.EventHistoryChanged, func(interface{}) {
		gc.Refresh()
	})
	state.On(app.EventSelectionChanged, func(interface{}) {
		gc.Refresh()
	})
	state.On(app.EventHoverChanged, func(interface{}) {
		gc.Refresh()
	})

	return gc
}

// Container returns the canvas container for embedding in layouts.
func (gc *GridCanvas) Container() fyne.CanvasObject {
	return gc.scroll
}

// SetMode sets the interaction mode.
func (gc *GridCanvas) SetMode(mode Mode) {
	gc.mode = mode
}

// GetMode returns the interaction mode.
func (gc *GridCanvas) GetMode() Mode {
	return gc.mode
}

// SetZoom sets the zoom level.
func (gc *GridCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	gc.zoom = zoom
	gc.invalidate()
	gc.updateContentSize()

	if gc.onZoomChange != nil {
		gc.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (gc *GridCanvas) GetZoom() float64 {
	return gc.zoom
}

// ZoomIn increases the zoom level.
func (gc *GridCanvas) ZoomIn() {
	gc.SetZoom(gc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (gc *GridCanvas) ZoomOut() {
	gc.SetZoom(gc.zoom / zoomStep)
}

// OnZoomChange sets a callback for zoom changes.
func (gc *GridCanvas) OnZoomChange(callback func(zoom float64)) {
	gc.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (gc *GridCanvas) Refresh() {
	gc.raster.Refresh()
}

// cellSize returns the on-screen cell edge for the current grid and zoom.
func (gc *GridCanvas) cellSize() int {
	return render.CellSizeFor(gc.state.GridSize(), gc.zoom)
}

// invalidate drops the cached base rendering.
func (gc *GridCanvas) invalidate() {
	gc.base = nil
	gc.baseSig = baseSignature{}
}

// updateContentSize resizes the raster to the full grid extent at the
// current zoom.
func (gc *GridCanvas) updateContentSize() {
	extent := float32(gc.state.GridSize() * gc.cellSize())
	gc.imgSize = fyne.NewSize(extent, extent)

	gc.raster.SetMinSize(gc.imgSize)
	gc.raster.Resize(gc.imgSize)
	if gc.content != nil {
		gc.content.Resize(gc.imgSize)
		gc.content.Refresh()
	}
	gc.raster.Refresh()
	if gc.scroll != nil {
		gc.scroll.Refresh()
	}
}

// draw is the raster drawing function. The base cell rendering is cached by
// signature; selection and hover are composited on a copy.
func (gc *GridCanvas) draw(w, h int) image.Image {
	g := gc.state.Grid()
	cellSize := gc.cellSize()

	offset := gc.scroll.Offset()
	viewSize := gc.scroll.Size()
	visible, ok := geometry.VisibleRange(
		float64(viewSize.Width), float64(viewSize.Height),
		float64(offset.X), float64(offset.Y),
		cellSize, g.Size(),
	)
	if !ok {
		// Viewport size is unknown during the first layout pass; render
		// everything rather than a blank frame.
		visible = geometry.Rect{MinX: 0, MinY: 0, MaxX: g.Size() - 1, MaxY: g.Size() - 1}
	}

	sig := baseSignature{grid: g, cellSize: cellSize, width: w, height: h, visible: visible}
	if gc.base == nil || gc.baseSig != sig {
		base := image.NewRGBA(image.Rect(0, 0, w, h))
		render.ForGridSize(g.Size()).Draw(base, g, render.Viewport{
			CellSize: cellSize,
			Visible:  visible,
		})
		gc.base = base
		gc.baseSig = sig
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), gc.base, image.Point{}, draw.Src)

	render.DrawOverlay(output, gc.state.Selection(), gc.state.Hover(), cellSize)

	return output
}

// CreateRenderer implements fyne.Widget.
func (gc *GridCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &gridCanvasRenderer{canvas: gc}
}

type gridCanvasRenderer struct {
	canvas *GridCanvas
}

func (r *gridCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
}

func (r *gridCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *gridCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *gridCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *gridCanvasRenderer) Destroy() {}
