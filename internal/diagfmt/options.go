package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints the path recorded in the position.
	PathModeAuto PathMode = iota
	// PathModeBasename keeps only the last path element.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	PathMode    PathMode
	TabWidth    int // ширина табуляции в превью, 0 - 4
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, 0 - без ограничений
}
