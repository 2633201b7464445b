package pdf

const (
	// DefaultScalePercent is the default overlay width as a percentage of the page width
	DefaultScalePercent = 35

	// DefaultOpacityPercent is the default overlay opacity
	DefaultOpacityPercent = 85

	// MinScalePercent and MaxScalePercent bound the overlay width
	MinScalePercent = 1
	MaxScalePercent = 100

	// MinOpacityPercent and MaxOpacityPercent bound the overlay opacity
	MinOpacityPercent = 0
	MaxOpacityPercent = 100

	// DefaultDirPermissions for per-run work directories
	DefaultDirPermissions = 0755

	// DefaultFilePermissions for intermediate watermark pages
	DefaultFilePermissions = 0644

	// maxAlpha is the largest value an 8-bit alpha channel can hold
	maxAlpha = 0xff

	// watermarkImageName is the name the overlay image is registered under in the canvas
	watermarkImageName = "overlay"

	// mergeDescription places a single-page watermark PDF 1:1 over the target page.
	// The watermark page has the target page's size, so absolute scale 1 at the bottom-left
	// corner with no offset covers the page exactly.
	mergeDescription = "scalefactor:1 abs, position:bl, offset:0 0, rotation:0, opacity:1"
)
