package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"blorkfield-site/logger"
)

// PreviewOptions configures headless Chrome
type PreviewOptions struct {
	ChromePath string
	Timeout    time.Duration
	Width      int64
	Height     int64
}

// PreviewService captures the rendered page with headless Chrome
type PreviewService struct {
	opts PreviewOptions
	log  logger.Logger
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(opts PreviewOptions, log logger.Logger) *PreviewService {
	return &PreviewService{opts: opts, log: log}
}

// chromeCandidates are checked in order when no explicit path is configured
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath returns configured if it exists, otherwise the first
// existing candidate, otherwise "" to let chromedp search on its own.
func detectChromePath(configured string, candidates []string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// newBrowser starts a headless browser bound to ctx with the configured timeout
func (s *PreviewService) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, s.opts.Timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in containers
		chromedp.WindowSize(int(s.opts.Width), int(s.opts.Height)),
	)
	if chromePath := detectChromePath(s.opts.ChromePath, chromeCandidates); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
		cancelTimeout()
	}
}

// waitForImages resolves once fonts and every <img> have loaded or failed
const waitForImages = `
(function() {
	return Promise.all([
		document.fonts.ready,
		Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
			return new Promise((resolve) => {
				if (img.complete) {
					resolve();
					return;
				}
				const timeout = setTimeout(() => resolve(), 5000);
				img.onload = () => { clearTimeout(timeout); resolve(); };
				img.onerror = () => { clearTimeout(timeout); resolve(); };
			});
		}))
	]).then(() => true);
})();
`

func (s *PreviewService) loadPage(url string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.EmulateViewport(s.opts.Width, s.opts.Height),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForImages, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// CapturePNG takes a full-page screenshot of url
func (s *PreviewService) CapturePNG(ctx context.Context, url string) ([]byte, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		s.loadPage(url),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	s.log.Info("Captured page screenshot", logger.String("url", url), logger.Int("bytes", len(buf)))
	return buf, nil
}

// PrintPDF prints url to an A4 PDF with backgrounds
func (s *PreviewService) PrintPDF(ctx context.Context, url string) ([]byte, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		s.loadPage(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.log.Info("Printed page to PDF", logger.String("url", url), logger.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}
