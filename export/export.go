// Package export is the entry point of the deck compiler. An export walks
// Validating, Assembling and Writing to Done, or stops at Rejected when the
// deck is unusable or the document cannot be written.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/config"
	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/render"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// Extension is appended to file names that lack it.
const Extension = ".pptx"

var (
	// ErrInvalidDeckData rejects a deck before compilation starts.
	ErrInvalidDeckData = errors.New("invalid deck data")
	// ErrWriteFailure reports that the document could not be written.
	ErrWriteFailure = errors.New("failed to write presentation")
)

// State is a stage of an export.
type State int

const (
	StateValidating State = iota
	StateAssembling
	StateWriting
	StateDone
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAssembling:
		return "assembling"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateRejected:
		return "rejected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Error is a fatal export error tagged with the stage it happened in.
type Error struct {
	Stage State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configure an Exporter.
type Options struct {
	Creator          string
	Company          string
	SlideNumbers     bool
	MediaTimeout     time.Duration
	MediaConcurrency int
	// Loader resolves picture references. Nil uses pptx.DefaultMediaLoader.
	Loader pptx.MediaLoader
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig copies the export settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.Default()
	}
	return Options{
		Creator:          cfg.Creator,
		Company:          cfg.Company,
		SlideNumbers:     cfg.SlideNumbers,
		MediaTimeout:     cfg.MediaTimeout,
		MediaConcurrency: cfg.MediaConcurrency,
	}
}

// Exporter compiles decks to .pptx documents.
type Exporter struct {
	opts     Options
	log      logrus.FieldLogger
	registry *render.Registry

	// OnState, when set, is called on every state transition.
	OnState func(State)
}

// NewExporter creates an exporter. A nil log uses the standard logger.
func NewExporter(opts Options, log logrus.FieldLogger) *Exporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Exporter{
		opts:     opts,
		log:      log,
		registry: render.NewDefaultRegistry(),
	}
}

// Registry returns the handler registry so callers can add component types.
func (e *Exporter) Registry() *render.Registry {
	return e.registry
}

// ExportDeck compiles d into fileName with default options.
func ExportDeck(ctx context.Context, d *deck.Deck, fileName string) error {
	_, err := NewExporter(DefaultOptions(), nil).Export(ctx, d, fileName)
	return err
}

// Export compiles d and writes it to fileName, appending the .pptx
// extension when missing. An empty fileName is derived from the deck
// title. Parent directories are created and a partial file is removed on
// failure.
func (e *Exporter) Export(ctx context.Context, d *deck.Deck, fileName string) (*Report, error) {
	p, report, err := e.compile(d)
	if err != nil {
		return nil, err
	}
	path := OutputPath(fileName, d)
	e.transition(StateWriting)
	if err := e.writer(p).SaveContext(ctx, path); err != nil {
		return report, e.writeFailure(err, path)
	}
	e.finish(d, report, path)
	return report, nil
}

// ExportTo compiles d and writes the document to w.
func (e *Exporter) ExportTo(ctx context.Context, d *deck.Deck, w io.Writer) (*Report, error) {
	p, report, err := e.compile(d)
	if err != nil {
		return nil, err
	}
	e.transition(StateWriting)
	if err := e.writer(p).WriteToContext(ctx, w); err != nil {
		return report, e.writeFailure(err, "")
	}
	e.finish(d, report, "")
	return report, nil
}

// ExportJSON decodes a deck document and exports it. Documents that cannot
// be decoded are rejected as invalid deck data.
func (e *Exporter) ExportJSON(ctx context.Context, raw []byte, fileName string) (*Report, error) {
	d, err := deck.Parse(raw)
	if err != nil {
		e.transition(StateValidating)
		return nil, e.reject(fmt.Errorf("%w: %w", ErrInvalidDeckData, err))
	}
	return e.Export(ctx, d, fileName)
}

func (e *Exporter) compile(d *deck.Deck) (*pptx.Presentation, *Report, error) {
	e.transition(StateValidating)
	if !resolve.IsValidDeckData(d, e.log) {
		return nil, nil, e.reject(ErrInvalidDeckData)
	}

	e.transition(StateAssembling)
	a := &Assembler{
		Registry:     e.registry,
		Log:          e.log,
		Creator:      resolve.Cascade(e.opts.Creator, pptx.DefaultCreator),
		Company:      e.opts.Company,
		SlideNumbers: e.opts.SlideNumbers,
	}
	p, report := a.Assemble(d)
	return p, report, nil
}

func (e *Exporter) writer(p *pptx.Presentation) *pptx.PPTXWriter {
	loader := e.opts.Loader
	if loader == nil {
		loader = pptx.NewDefaultMediaLoader(e.opts.MediaTimeout)
	}
	return pptx.NewPPTXWriter(p).
		SetMediaLoader(loader).
		SetLogger(e.log).
		SetConcurrency(e.opts.MediaConcurrency)
}

func (e *Exporter) reject(err error) error {
	e.transition(StateRejected)
	return &Error{Stage: StateValidating, Err: err}
}

func (e *Exporter) writeFailure(err error, path string) error {
	e.log.WithField("path", path).WithError(err).Error("failed to write presentation")
	e.transition(StateRejected)
	return &Error{Stage: StateWriting, Err: fmt.Errorf("%w: %w", ErrWriteFailure, err)}
}

func (e *Exporter) finish(d *deck.Deck, r *Report, path string) {
	e.transition(StateDone)
	fields := logrus.Fields{
		"deck_id":      d.ID.String(),
		"slides":       r.Slides,
		"components":   r.Components,
		"placeholders": r.Placeholders,
		"failures":     len(r.Failures),
	}
	if path != "" {
		fields["path"] = path
	}
	e.log.WithFields(fields).Info("deck exported")
}

func (e *Exporter) transition(s State) {
	e.log.WithField("state", s.String()).Debug("export state")
	if e.OnState != nil {
		e.OnState(s)
	}
}

// OutputPath returns fileName with the .pptx extension, or a name derived
// from the deck title when fileName is blank.
func OutputPath(fileName string, d *deck.Deck) string {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = SafeFileName(d.Title.String())
	}
	if !strings.EqualFold(filepath.Ext(fileName), Extension) {
		fileName += Extension
	}
	return fileName
}

// SafeFileName turns a title into a file base name. Blank titles yield
// "deck".
func SafeFileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, ". ")
	if name == "" {
		return "deck"
	}
	return name
}
