package media

import (
	"github.com/user/slidecast/pkg/ports"
)

// Orientation classifies how a clip was recorded, derived from the four
// affine coefficients of its display matrix.
type Orientation int

const (
	LandscapeRight Orientation = iota // identity matrix
	LandscapeLeft                     // rotated 180°
	Portrait                          // rotated 90°
	PortraitUpsideDown                // rotated 270°
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case LandscapeRight:
		return "landscape-right"
	case LandscapeLeft:
		return "landscape-left"
	case Portrait:
		return "portrait"
	case PortraitUpsideDown:
		return "portrait-upside-down"
	default:
		return "unknown"
	}
}

// IsPortrait reports whether the orientation swaps width and height.
func (o Orientation) IsPortrait() bool {
	return o == Portrait || o == PortraitUpsideDown
}

// ClassifyOrientation maps a display matrix to a recording orientation.
// Unrecognized matrices are treated as upright landscape.
func ClassifyOrientation(t ports.TransformMatrix) Orientation {
	switch {
	case t.A == 0 && t.B == 1 && t.C == -1 && t.D == 0:
		return Portrait
	case t.A == 0 && t.B == -1 && t.C == 1 && t.D == 0:
		return PortraitUpsideDown
	case t.A == -1 && t.B == 0 && t.C == 0 && t.D == -1:
		return LandscapeLeft
	default:
		return LandscapeRight
	}
}

// NaturalDimensions returns the display dimensions of a clip after
// orientation correction. Portrait variants swap width and height.
func NaturalDimensions(info ports.ClipInfo) (width, height int) {
	if ClassifyOrientation(info.Transform).IsPortrait() {
		return info.Height, info.Width
	}
	return info.Width, info.Height
}
