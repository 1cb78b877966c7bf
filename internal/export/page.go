package export

// A4 page dimensions in millimeters, portrait orientation.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// placement is where an image lands on the A4 sheet, in millimeters.
type placement struct {
	X, Y, W, H float64
}

// fitToPage scales an image of the given pixel dimensions to fit inside an
// A4 page while preserving aspect ratio, then centers it. Images smaller
// than the page in both ratios still scale up to fill one dimension.
func fitToPage(imgW, imgH int) placement {
	if imgW <= 0 || imgH <= 0 {
		return placement{X: 0, Y: 0, W: pageWidthMM, H: pageHeightMM}
	}
	scale := pageWidthMM / float64(imgW)
	if h := float64(imgH) * scale; h > pageHeightMM {
		scale = pageHeightMM / float64(imgH)
	}
	w := float64(imgW) * scale
	h := float64(imgH) * scale
	return placement{
		X: (pageWidthMM - w) / 2,
		Y: (pageHeightMM - h) / 2,
		W: w,
		H: h,
	}
}
