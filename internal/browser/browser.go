// Package browser finds a local Chromium install and drives it headless
// through Rod to print documents to PDF.
package browser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Detector reports whether a Chromium binary is available. A configured
// path wins over the launcher's search of the usual install locations.
type Detector struct {
	Path     string
	lookPath func() (string, bool)
	stat     func(string) (os.FileInfo, error)
}

// NewDetector returns a detector honouring an optional explicit binary.
func NewDetector(path string) *Detector {
	return &Detector{Path: path, lookPath: launcher.LookPath, stat: os.Stat}
}

// Binary returns the Chromium executable to launch, if any.
func (d *Detector) Binary() (string, bool) {
	if d == nil {
		return "", false
	}
	if d.Path != "" {
		info, err := d.stat(d.Path)
		if err != nil || info.IsDir() {
			return "", false
		}
		return d.Path, true
	}
	if d.lookPath == nil {
		return "", false
	}
	return d.lookPath()
}

// Chromium is true when Binary finds an executable. It probes the
// filesystem on every call.
func (d *Detector) Chromium() bool {
	_, ok := d.Binary()
	return ok
}

// PDFOptions tunes PrintPDF.
type PDFOptions struct {
	Landscape       bool
	PrintBackground bool
}

// PrintPDF loads document into a fresh headless Chromium and streams the
// printed PDF into w. The browser is torn down before returning.
func PrintPDF(ctx context.Context, bin, document string, opts PDFOptions, w io.Writer) error {
	l := launcher.New().Bin(bin).Headless(true).Set("disable-gpu")
	u, err := l.Context(ctx).Launch()
	if err != nil {
		return fmt.Errorf("browser: launch: %w", err)
	}
	defer l.Cleanup()

	b := rod.New().Context(ctx).ControlURL(u)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}
	defer b.Close()

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return fmt.Errorf("browser: create page: %w", err)
	}
	if err := page.SetDocumentContent(document); err != nil {
		return fmt.Errorf("browser: set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("browser: wait load: %w", err)
	}
	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		PrintBackground: opts.PrintBackground,
	})
	if err != nil {
		return fmt.Errorf("browser: print: %w", err)
	}
	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("browser: read pdf: %w", err)
	}
	return nil
}
