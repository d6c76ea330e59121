// Package pkg provides the libraries behind svgmapper, a floor-plan
// annotation core.
//
// # Overview
//
// svgmapper draws rooms (polygons) and seats (markers) over a background
// image and exports them as SVG in the image's pixel coordinates. The pkg
// directory is organized into three areas:
//
//  1. Geometry - [geom], [transform], [snap] and [viewport] map between
//     image pixels, control coordinates and the pan/zoom camera.
//  2. Editing - [model] holds the document, [undo] records every mutation,
//     [draft] authors new polygons, [edit] mutates existing rooms and seats.
//  3. Input and output - [background] inspects images, [export] writes SVG
//     and PNG, [script] replays gesture scripts, [editor] ties it together
//     into one session.
//
// Supporting packages: [errors] (coded errors), [cache] (image info cache),
// [observability] (hooks) and [buildinfo].
//
// # Data flow
//
//	window point
//	     ↓  viewport.Camera.ScreenToWorld
//	control point
//	     ↓  transform.ToPixel (fit, letterbox, DPI)
//	image pixel  →  snap  →  draft / edit  →  model.Document (undoable)
//	                                               ↓
//	                                         export.Exporter → SVG / PNG
//
// # Quick Start
//
//	s := editor.New(editor.WithConfig(editor.DefaultConfig()))
//	s.SetControlSize(geom.Sz(1024, 768))
//	if err := s.ImportBackground(ctx, "floor1.png"); err != nil {
//	    // the document continues without a background
//	}
//
//	s.SetTool(editor.PolygonTool)
//	for _, p := range []geom.Point{{X: 100, Y: 100}, {X: 400, Y: 100}, {X: 400, Y: 300}} {
//	    s.Click(p, 1)
//	}
//	s.Click(geom.Pt(100, 100), 2) // closing gesture
//	s.ClosePolygon("Lobby")
//
//	err := s.ExportToFile(ctx, "floor1.svg")
package pkg
