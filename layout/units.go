package layout

// This file keeps the unit conventions shared by layout and rendering.
// All coordinates and font sizes in this package are millimeters; the
// renderer converts to pt only at the font-face boundary.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Fixed page size: A4 portrait, in mm. Every size in the engine is a
// formula over these dimensions (times the density scale), so rendering
// the same layout at any uniform raster scale stays pixel-identical.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)
