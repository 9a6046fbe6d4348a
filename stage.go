package shaderprog

// Stage identifies one programmable shader stage of a program.
type Stage uint8

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = iota

	// StageFragment is the fragment shader stage.
	StageFragment

	// StageCount is the number of shader stages a program can hold.
	StageCount = 2
)

// IsValid reports whether s names an actual shader stage.
func (s Stage) IsValid() bool {
	return s < StageCount
}

// String returns the stage name as it appears in shader module labels.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "invalid"
	}
}
