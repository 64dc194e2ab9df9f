package ohmd

// StringValue selects which enumeration string ListGetString returns.
type StringValue int

const (
	Vendor StringValue = iota
	Product
	Path
)

// FloatValue identifies one float-typed device property. Values are part of
// the stable public surface and must not be renumbered.
type FloatValue int

const (
	RotationQuat FloatValue = iota + 1

	LeftEyeGLModelviewMatrix
	RightEyeGLModelviewMatrix

	LeftEyeGLProjectionMatrix
	RightEyeGLProjectionMatrix

	PositionVector

	ScreenHorizontalSize
	ScreenVerticalSize

	LensHorizontalSeparation
	LensVerticalPosition

	LeftEyeFOV
	LeftEyeAspectRatio
	RightEyeFOV
	RightEyeAspectRatio

	EyeIPD

	ProjectionZFar
	ProjectionZNear

	DistortionK
)

// IntValue identifies one integer-typed device property.
type IntValue int

const (
	ScreenHorizontalResolution IntValue = iota
	ScreenVerticalResolution
)

// floatValueLens maps every float key to its fixed buffer arity. The
// dispatcher rejects any access with a shorter output or input buffer
// before touching it.
var floatValueLens = map[FloatValue]int{
	RotationQuat:               4,
	LeftEyeGLModelviewMatrix:   16,
	RightEyeGLModelviewMatrix:  16,
	LeftEyeGLProjectionMatrix:  16,
	RightEyeGLProjectionMatrix: 16,
	PositionVector:             3,
	ScreenHorizontalSize:       1,
	ScreenVerticalSize:         1,
	LensHorizontalSeparation:   1,
	LensVerticalPosition:       1,
	LeftEyeFOV:                 1,
	LeftEyeAspectRatio:         1,
	RightEyeFOV:                1,
	RightEyeAspectRatio:        1,
	EyeIPD:                     1,
	ProjectionZFar:             1,
	ProjectionZNear:            1,
	DistortionK:                6,
}

// FloatValueLen returns the number of floats key reads or writes, or 0 for
// an unknown key.
func FloatValueLen(v FloatValue) int {
	return floatValueLens[v]
}

var floatValueNames = map[FloatValue]string{
	RotationQuat:               "rotation-quat",
	LeftEyeGLModelviewMatrix:   "left-eye-gl-modelview-matrix",
	RightEyeGLModelviewMatrix:  "right-eye-gl-modelview-matrix",
	LeftEyeGLProjectionMatrix:  "left-eye-gl-projection-matrix",
	RightEyeGLProjectionMatrix: "right-eye-gl-projection-matrix",
	PositionVector:             "position-vector",
	ScreenHorizontalSize:       "screen-horizontal-size",
	ScreenVerticalSize:         "screen-vertical-size",
	LensHorizontalSeparation:   "lens-horizontal-separation",
	LensVerticalPosition:       "lens-vertical-position",
	LeftEyeFOV:                 "left-eye-fov",
	LeftEyeAspectRatio:         "left-eye-aspect-ratio",
	RightEyeFOV:                "right-eye-fov",
	RightEyeAspectRatio:        "right-eye-aspect-ratio",
	EyeIPD:                     "eye-ipd",
	ProjectionZFar:             "projection-zfar",
	ProjectionZNear:            "projection-znear",
	DistortionK:                "distortion-k",
}

func (v FloatValue) String() string {
	if s, ok := floatValueNames[v]; ok {
		return s
	}
	return "unknown-float-value"
}

func (v IntValue) String() string {
	switch v {
	case ScreenHorizontalResolution:
		return "screen-horizontal-resolution"
	case ScreenVerticalResolution:
		return "screen-vertical-resolution"
	}
	return "unknown-int-value"
}
