// Package geom provides the small set of 2D primitives the editor needs.
//
// Points carry no coordinate-space tag: whether a [Point] is in image-pixel
// space or screen space is decided by the caller, and conversion between the
// two always goes through package transform.
//
// Two primitives do most of the work:
//
//   - [DistanceToSegment] and [NearestEdge] find where a vertex should be
//     inserted along a polygon outline.
//   - [RemapBounds] maps every point of a polygon from one axis-aligned
//     bounding box into another, which is how a room is resized or moved
//     through its selection handles without a general matrix.
package geom
