// Package export turns a rendered document into files on disk: a
// standalone HTML page always, and a PDF when Chromium is available.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/mdpreview/internal/browser"
	"github.com/atomicstack/mdpreview/internal/render"
	"github.com/google/uuid"
)

// BinaryFinder locates a Chromium executable.
type BinaryFinder interface {
	Binary() (string, bool)
}

// Result lists the files an export produced.
type Result struct {
	HTML string
	PDF  string
}

// Paths returns the written files in order.
func (r Result) Paths() []string {
	paths := []string{r.HTML}
	if r.PDF != "" {
		paths = append(paths, r.PDF)
	}
	return paths
}

type printFunc func(ctx context.Context, bin, document string, opts browser.PDFOptions, w *os.File) error

// Exporter writes documents into Dir.
type Exporter struct {
	Dir    string
	finder BinaryFinder
	print  printFunc
}

// New returns an exporter writing into dir. A nil finder disables PDF
// output.
func New(dir string, finder BinaryFinder) *Exporter {
	return &Exporter{
		Dir:    dir,
		finder: finder,
		print: func(ctx context.Context, bin, document string, opts browser.PDFOptions, w *os.File) error {
			return browser.PrintPDF(ctx, bin, document, opts, w)
		},
	}
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body class="theme-{{.Theme}}">
<article>
{{.Body}}
</article>
</body>
</html>
`))

// Standalone wraps the document markup and stylesheet into a complete HTML
// page. The markup has already been sanitised by the renderer.
func Standalone(doc render.Document) (string, error) {
	title := doc.Title
	if title == "" {
		title = "Untitled"
	}
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title string
		Theme string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		Theme: doc.Theme,
		CSS:   styleText(doc.Stylesheet),
		Body:  template.HTML(doc.Markup),
	})
	if err != nil {
		return "", fmt.Errorf("export: template: %w", err)
	}
	return buf.String(), nil
}

// styleText escapes every '<' in css so that nothing in the stylesheet can
// close the <style> element. Front matter copies its style directive into
// the stylesheet verbatim.
func styleText(css string) template.CSS {
	return template.CSS(strings.ReplaceAll(css, "<", `\3c `))
}

// BaseName derives output names from the source file, or a random name for
// unsaved buffers.
func BaseName(source string) string {
	if source == "" {
		return "untitled-" + uuid.NewString()[:8]
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Export writes doc as HTML and, when possible, PDF. A PDF failure still
// returns the HTML path alongside the error.
func (e *Exporter) Export(ctx context.Context, doc render.Document, source string) (Result, error) {
	var res Result
	document, err := Standalone(doc)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return res, fmt.Errorf("export: create dir: %w", err)
	}
	base := filepath.Join(e.Dir, BaseName(source))
	htmlPath := base + ".html"
	if err := os.WriteFile(htmlPath, []byte(document), 0o644); err != nil {
		return res, fmt.Errorf("export: write html: %w", err)
	}
	res.HTML = htmlPath

	if e.finder == nil {
		return res, nil
	}
	bin, ok := e.finder.Binary()
	if !ok {
		return res, nil
	}
	pdfPath := base + ".pdf"
	f, err := os.Create(pdfPath)
	if err != nil {
		return res, fmt.Errorf("export: create pdf: %w", err)
	}
	err = e.print(ctx, bin, document, browser.PDFOptions{PrintBackground: true}, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(pdfPath)
		return res, fmt.Errorf("export: pdf: %w", err)
	}
	res.PDF = pdfPath
	return res, nil
}
