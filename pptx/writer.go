package pptx

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
	loader       MediaLoader
	log          logrus.FieldLogger
	concurrency  int

	// per-write state
	media      map[*DrawingShape]*mediaPart
	mediaIndex map[*DrawingShape]int
	chartIndex map[*ChartShape]int
}

// NewPPTXWriter creates a PPTX writer using the default media loader.
func NewPPTXWriter(p *Presentation) *PPTXWriter {
	return &PPTXWriter{
		presentation: p,
		loader:       NewDefaultMediaLoader(0),
		log:          logrus.StandardLogger(),
		concurrency:  4,
	}
}

// SetMediaLoader sets the loader used for pictures referenced by source.
func (w *PPTXWriter) SetMediaLoader(l MediaLoader) *PPTXWriter {
	if l != nil {
		w.loader = l
	}
	return w
}

// SetLogger sets the logger that receives media substitution warnings.
func (w *PPTXWriter) SetLogger(l logrus.FieldLogger) *PPTXWriter {
	if l != nil {
		w.log = l
	}
	return w
}

// SetConcurrency bounds the number of media references loaded in parallel.
func (w *PPTXWriter) SetConcurrency(n int) *PPTXWriter {
	if n < 1 {
		n = 1
	}
	w.concurrency = n
	return w
}

// Save writes the presentation to a file.
func (w *PPTXWriter) Save(path string) error {
	return w.SaveContext(context.Background(), path)
}

// SaveContext writes the presentation to a file. The file is removed when
// writing fails part way.
func (w *PPTXWriter) SaveContext(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := w.WriteToContext(ctx, f)
	closeErr := f.Close()

	if writeErr != nil {
		os.Remove(path)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}
	return nil
}

// WriteTo writes the presentation to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	return w.WriteToContext(context.Background(), writer)
}

// WriteToContext resolves all picture media and writes the presentation.
func (w *PPTXWriter) WriteToContext(ctx context.Context, writer io.Writer) error {
	if w.presentation == nil {
		return fmt.Errorf("presentation is nil")
	}
	if len(w.presentation.slides) == 0 {
		return fmt.Errorf("presentation has no slides")
	}

	if err := w.resolveMedia(ctx); err != nil {
		return err
	}
	w.indexParts()

	zw := zip.NewWriter(writer)

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writeCustomProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := ctx.Err(); err != nil {
			return err
		}
		rels := w.planSlideRels(slide, i+1)
		if err := w.writeSlide(zw, slide, i+1, rels); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, i+1, rels); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			if cs, ok := shape.(*ChartShape); ok {
				if err := w.writeChartPart(zw, cs, w.chartIndex[cs]); err != nil {
					return err
				}
			}
		}
	}

	if w.hasNotes() {
		if err := w.writeNotesMaster(zw); err != nil {
			return err
		}
		for i, slide := range w.presentation.slides {
			if slide.notes != "" {
				if err := w.writeNotesSlide(zw, slide, i+1); err != nil {
					return err
				}
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize package: %w", err)
	}
	return nil
}

// resolveMedia loads every picture on every slide. References that cannot
// be loaded or decoded are replaced by TransparentPNG and logged; only
// context cancellation aborts.
func (w *PPTXWriter) resolveMedia(ctx context.Context) error {
	w.media = make(map[*DrawingShape]*mediaPart)

	var pending []*DrawingShape
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			ds, ok := shape.(*DrawingShape)
			if !ok {
				continue
			}
			if ds.data != nil {
				part, err := prepareMedia(ds.data, ds.mimeType)
				if err != nil {
					w.log.WithError(err).WithField("shape", ds.name).Warn("embedded image unusable, substituting transparent pixel")
					part = transparentPart()
				}
				w.media[ds] = part
				continue
			}
			pending = append(pending, ds)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	// identical references are fetched once
	type result struct {
		part *mediaPart
		err  error
	}
	var unique []string
	seen := make(map[string]bool)
	for _, ds := range pending {
		if !seen[ds.source] {
			seen[ds.source] = true
			unique = append(unique, ds.source)
		}
	}

	refs := make(map[string]*result, len(unique))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, ref := range unique {
		ref := ref
		g.Go(func() error {
			r := &result{}
			data, mime, err := w.loader.Load(gctx, ref)
			if err == nil {
				r.part, err = prepareMedia(data, mime)
			}
			r.err = err
			mu.Lock()
			refs[ref] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("media resolution interrupted: %w", err)
	}

	for _, ds := range pending {
		r := refs[ds.source]
		if r == nil || r.err != nil || r.part == nil {
			entry := w.log.WithField("ref", truncateRef(ds.source))
			if r != nil && r.err != nil {
				entry = entry.WithError(r.err)
			}
			entry.Warn("image could not be loaded, substituting transparent pixel")
			w.media[ds] = transparentPart()
			continue
		}
		w.media[ds] = r.part
	}
	return nil
}

// indexParts assigns package-wide part numbers to pictures and charts.
func (w *PPTXWriter) indexParts() {
	w.mediaIndex = make(map[*DrawingShape]int)
	w.chartIndex = make(map[*ChartShape]int)
	img, chart := 1, 1
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			switch s := shape.(type) {
			case *DrawingShape:
				w.mediaIndex[s] = img
				img++
			case *ChartShape:
				if s.plotArea.chartType != nil {
					w.chartIndex[s] = chart
					chart++
				}
			}
		}
	}
}

func (w *PPTXWriter) hasNotes() bool {
	for _, s := range w.presentation.slides {
		if s.notes != "" {
			return true
		}
	}
	return false
}

// truncateRef keeps data URIs out of log lines.
func truncateRef(ref string) string {
	if len(ref) > 96 {
		return ref[:96] + "..."
	}
	return ref
}

// Save writes the presentation to path using the default PPTX writer.
func (p *Presentation) Save(path string) error {
	return NewPPTXWriter(p).Save(path)
}

// WriteTo writes the presentation to w using the default PPTX writer.
func (p *Presentation) WriteTo(w io.Writer) error {
	return NewPPTXWriter(p).WriteTo(w)
}
