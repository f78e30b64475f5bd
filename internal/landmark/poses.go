package landmark

// PinchPose returns a right hand whose thumb tip and index tip touch.
// In a 640x480 frame the tips are about 6 pixels apart.
func PinchPose() Hand {
	h := Hand{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb curls toward the index tip
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.60, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.560, Y: 0.540, Z: -0.03}

	// Index bends down to meet the thumb
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.56, Z: -0.01}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.52, Z: -0.02}
	h.Points[IndexTip] = Point3D{X: 0.565, Y: 0.550, Z: -0.03}

	fillRestingFingers(&h)
	return h
}

// OpenPalmPose returns a right hand with all fingers extended, thumb far from
// the index tip.
func OpenPalmPose() Hand {
	h := Hand{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	fillRestingFingers(&h)
	return h
}

// fillRestingFingers sets the middle, ring and pinky fingers to a relaxed,
// slightly curled position.
func fillRestingFingers(h *Hand) {
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.54, Z: -0.01}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.46, Z: -0.02}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.40, Z: -0.02}

	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.44, Y: 0.57, Z: -0.01}
	h.Points[RingDIP] = Point3D{X: 0.43, Y: 0.50, Z: -0.02}
	h.Points[RingTip] = Point3D{X: 0.43, Y: 0.45, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.62, Z: -0.01}
	h.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.56, Z: -0.02}
	h.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.51, Z: -0.02}
}
