// Package export writes a document as a standalone SVG in image-pixel
// space, and renders a PNG preview of its annotation layer.
//
// Output never depends on the on-screen view. The viewBox is the background
// image size (or a default canvas when there is none), grown to cover every
// room vertex and seat marker. The background, when its file is readable,
// is embedded as a base64 data URI stretched over the whole viewBox.
//
// # Layout
//
//	<svg viewBox="0 0 W H">
//	  <g id="background"><image .../></g>
//	  <g id="rooms">
//	    <polygon points="..." data-label="..."/><text ...>label</text>
//	  </g>
//	  <g id="seats">
//	    <circle cx cy r="8" data-label="S1"/>
//	    <g id="row-A"><circle ... data-label="A1"/>...</g>
//	  </g>
//	</svg>
//
// Single seats come first, then one group per seat row in order of first
// appearance. A room's own style overrides the exporter's fill, stroke and
// fill opacity.
//
// Numbers are rounded to four decimals and printed with '.' as decimal
// separator and no exponent, whatever the process locale.
//
// Exporting the same document twice yields byte-identical output.
package export
