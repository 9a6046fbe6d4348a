package shaderprog

// BindingPoint is an enumerated slot index identifying where a resource
// group attaches on the GPU pipeline. The same set of binding points is
// used for uniform blocks and sampler blocks.
type BindingPoint uint8

const (
	// BindingPerView holds resources updated once per view (camera,
	// viewport, frame uniforms).
	BindingPerView BindingPoint = iota

	// BindingPerRenderable holds resources updated per renderable object
	// (object transforms, skinning data).
	BindingPerRenderable

	// BindingLights holds light data shared by all lit materials.
	BindingLights

	// BindingPostProcess holds post-processing stage resources.
	BindingPostProcess

	// BindingPerMaterial holds resources owned by a material instance.
	BindingPerMaterial

	// BindingPointCount is the number of enumerated binding points and the
	// length of the per-program block arrays.
	BindingPointCount = 5
)

// IsValid reports whether b is within the enumerated binding-point range.
func (b BindingPoint) IsValid() bool {
	return b < BindingPointCount
}

// String returns a short name for the binding point.
func (b BindingPoint) String() string {
	switch b {
	case BindingPerView:
		return "per_view"
	case BindingPerRenderable:
		return "per_renderable"
	case BindingLights:
		return "lights"
	case BindingPostProcess:
		return "post_process"
	case BindingPerMaterial:
		return "per_material"
	default:
		return "invalid"
	}
}
