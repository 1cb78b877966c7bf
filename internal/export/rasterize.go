package export

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// Capture at double density so text stays crisp after PDF embedding.
	captureScale = 2.0

	viewportWidth  = 900
	viewportHeight = 1272

	rasterizeTimeout = 45 * time.Second
)

// rasterize loads the HTML in a headless browser and screenshots the full
// page as PNG.
func rasterize(ctx context.Context, html []byte) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, rasterizeTimeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(captureScale)),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, &ExportError{Message: "failed to rasterize document", Cause: err}
	}
	return shot, nil
}
