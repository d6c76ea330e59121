// Package transform maps between image-pixel space and on-screen control
// space.
//
// # Coordinate Spaces
//
// Pixel space is the background image's native pixel grid. It is what the
// document persists and what the SVG export writes. Control space is the
// device-independent area the image is rendered into. The two differ by:
//
//   - DPI: an image tagged with 192 DPI is half as wide in device-independent
//     units as it is in pixels (dpiScale = imageDPI / 96).
//   - Stretch: the image is fitted into the control under one of three
//     [StretchMode] policies, scaling each axis and centering the result.
//
// # Usage
//
//	params := transform.Params{
//	    Image:   geom.Sz(800, 600),
//	    Control: geom.Sz(1024, 600),
//	    Stretch: transform.Uniform,
//	}
//	screen := transform.ToScreen(geom.Pt(100, 100), params)
//	pixel := transform.ToPixel(screen, params) // ≈ (100, 100)
//
// [ToPixel] clamps its result into the image, so a click in the letterbox
// margin maps to the nearest edge pixel. Degenerate sizes never fail: they
// produce an identity transform.
package transform
