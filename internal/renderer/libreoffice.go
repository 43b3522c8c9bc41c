package renderer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/deckcast/internal/model"
)

// pdfExportFilter keeps hidden slides so PDF pages line up with slide indices
const pdfExportFilter = `pdf:impress_pdf_Export:{"ExportHiddenSlides":{"type":"boolean","value":"true"}}`

type officeSession struct {
	r       *implRenderer
	dir     string
	pdfPath string
	pkg     *ooxmlPackage
	once    sync.Once
}

// Open converts the presentation to PDF in a private session directory and
// indexes its slides. A failed Open leaves nothing behind.
func (r *implRenderer) Open(ctx context.Context, path string) (Session, error) {
	for _, bin := range []string{r.cfg.SofficePath, r.cfg.PdftoppmPath} {
		if _, err := r.executor.LookPath(bin); err != nil {
			return nil, fmt.Errorf("renderer unavailable: %w", err)
		}
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve presentation path: %w", err)
	}

	dir, err := os.MkdirTemp("", "deckcast-render-*")
	if err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	s := &officeSession{r: r, dir: dir}
	if err := s.prepare(ctx, absPath, format); err != nil {
		s.Close()
		return nil, err
	}

	r.logger.Debug(ctx, "Opened presentation %s (%d slides)", path, s.pkg.SlideCount())
	return s, nil
}

func (s *officeSession) prepare(ctx context.Context, path string, format Format) error {
	pptxPath := path
	if format == FormatLegacy {
		convDir := filepath.Join(s.dir, "pptx")
		if err := s.soffice(ctx, "pptx", convDir, path); err != nil {
			return fmt.Errorf("convert legacy presentation: %w", err)
		}
		pptxPath = filepath.Join(convDir, baseName(path)+".pptx")
	}

	if err := s.soffice(ctx, pdfExportFilter, s.dir, path); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	s.pdfPath = filepath.Join(s.dir, baseName(path)+".pdf")
	if _, err := os.Stat(s.pdfPath); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}

	pkg, err := openPackage(pptxPath)
	if err != nil {
		return err
	}
	s.pkg = pkg

	return nil
}

// soffice runs a headless conversion with a per-session user profile, so
// concurrent runs do not fight over the default LibreOffice profile lock.
func (s *officeSession) soffice(ctx context.Context, convertTo, outDir, input string) error {
	profile := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(s.dir, "profile"))}
	args := []string{
		"--headless",
		"--norestore",
		"-env:UserInstallation=" + profile.String(),
		"--convert-to", convertTo,
		"--outdir", outDir,
		input,
	}

	ctx, cancel := s.r.withTimeout(ctx)
	defer cancel()

	_, err := s.r.executor.Execute(ctx, s.r.cfg.SofficePath, args...)
	return err
}

func (s *officeSession) SlideCount() int {
	return s.pkg.SlideCount()
}

func (s *officeSession) ExportSlideImage(ctx context.Context, index int, size model.Resolution, dest string) error {
	if index < 1 || index > s.SlideCount() {
		return fmt.Errorf("slide %d out of range (1-%d)", index, s.SlideCount())
	}
	if !strings.EqualFold(filepath.Ext(dest), ".png") {
		return fmt.Errorf("slide image %s must be a .png", dest)
	}

	page := strconv.Itoa(index)
	args := []string{
		"-png",
		"-f", page,
		"-l", page,
		"-scale-to-x", strconv.Itoa(size.Width),
		"-scale-to-y", strconv.Itoa(size.Height),
		"-singlefile",
		s.pdfPath,
		strings.TrimSuffix(dest, filepath.Ext(dest)),
	}

	ctx, cancel := s.r.withTimeout(ctx)
	defer cancel()

	if _, err := s.r.executor.Execute(ctx, s.r.cfg.PdftoppmPath, args...); err != nil {
		return fmt.Errorf("rasterize slide %d: %w", index, err)
	}
	return nil
}

func (s *officeSession) SlideText(index int) (string, error) {
	return s.pkg.SlideText(index)
}

// Close releases the package and removes the session directory. Safe to call twice.
func (s *officeSession) Close() error {
	var errs []error
	s.once.Do(func() {
		if s.pkg != nil {
			if err := s.pkg.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close package: %w", err))
			}
		}
		if err := os.RemoveAll(s.dir); err != nil {
			errs = append(errs, fmt.Errorf("remove session dir: %w", err))
		}
	})
	return errors.Join(errs...)
}

func (r *implRenderer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
