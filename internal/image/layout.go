package imagepkg

import "image"

// Anchors are top-left coordinates and may be negative when the art is
// larger than the canvas. Every call returns a fresh value.

// topBleed is how far background art is pushed above the canvas top edge.
const topBleed = -100

// BottomCenter centers art horizontally and aligns its bottom edge with the
// canvas bottom.
func BottomCenter(art, canvas image.Point) image.Point {
	return image.Pt(floorDiv(canvas.X-art.X, 2), canvas.Y-art.Y)
}

// TopCenterOffset centers art horizontally and lets it bleed above the top.
func TopCenterOffset(art, canvas image.Point) image.Point {
	return image.Pt(floorDiv(canvas.X-art.X, 2), topBleed)
}

// Center centers art on both axes.
func Center(art, canvas image.Point) image.Point {
	return image.Pt(floorDiv(canvas.X-art.X, 2), floorDiv(canvas.Y-art.Y, 2))
}

// floorDiv rounds toward negative infinity so odd negative spans land on the
// same pixel as floor division would.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
