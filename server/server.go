// Package server exposes deck storage and export over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/export"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/store"
)

// PPTXContentType is the media type of exported documents.
const PPTXContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// MaxDeckSize bounds the size of a posted deck document.
const MaxDeckSize = 32 << 20

// ExporterOptions returns opts with a media loader limited to data URIs and
// http(s) URLs, so posted decks cannot pull files off the server's disk.
func ExporterOptions(opts export.Options) export.Options {
	opts.Loader = pptx.NewRemoteMediaLoader(opts.MediaTimeout)
	return opts
}

// DeckFetcher loads a stored deck by id. It returns store.ErrNotFound for
// unknown ids.
type DeckFetcher interface {
	GetDeck(ctx context.Context, id string) (*deck.Deck, error)
}

// DeckStore is the storage the server needs.
type DeckStore interface {
	DeckFetcher
	SaveDeck(ctx context.Context, d *deck.Deck) (string, error)
	ListDecks(ctx context.Context) ([]store.Summary, error)
	DeleteDeck(ctx context.Context, id string) error
}

// Server handles the deck API.
type Server struct {
	store    DeckStore
	exporter *export.Exporter
	log      logrus.FieldLogger
}

// New creates a server backed by s that exports with e.
func New(s DeckStore, e *export.Exporter, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{store: s, exporter: e, log: log}
}

// Router returns the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/decks", s.ListDecks).Methods(http.MethodGet)
	api.HandleFunc("/decks", s.SaveDeck).Methods(http.MethodPost)
	api.HandleFunc("/decks/{id}", s.GetDeck).Methods(http.MethodGet)
	api.HandleFunc("/decks/{id}", s.DeleteDeck).Methods(http.MethodDelete)
	api.HandleFunc("/decks/{id}/export", s.ExportStored).Methods(http.MethodGet)
	api.HandleFunc("/export", s.ExportPosted).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

// SaveDeck stores the posted deck.
// POST /api/decks
func (s *Server) SaveDeck(w http.ResponseWriter, r *http.Request) {
	d, err := readDeck(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := s.store.SaveDeck(r.Context(), d)
	if err != nil {
		s.log.WithError(err).Error("failed to save deck")
		http.Error(w, "failed to save deck", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListDecks lists stored decks.
// GET /api/decks
func (s *Server) ListDecks(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListDecks(r.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to list decks")
		http.Error(w, "failed to list decks", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetDeck returns a stored deck.
// GET /api/decks/{id}
func (s *Server) GetDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := s.fetch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteDeck removes a stored deck.
// DELETE /api/decks/{id}
func (s *Server) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := s.store.DeleteDeck(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "deck not found", http.StatusNotFound)
	case err != nil:
		s.log.WithError(err).WithField("deck_id", id).Error("failed to delete deck")
		http.Error(w, "failed to delete deck", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportStored compiles a stored deck and streams the document.
// GET /api/decks/{id}/export
func (s *Server) ExportStored(w http.ResponseWriter, r *http.Request) {
	d, ok := s.fetch(w, r)
	if !ok {
		return
	}
	s.export(w, r, d)
}

// ExportPosted compiles the posted deck and streams the document.
// POST /api/export
func (s *Server) ExportPosted(w http.ResponseWriter, r *http.Request) {
	d, err := readDeck(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.export(w, r, d)
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request) (*deck.Deck, bool) {
	id := mux.Vars(r)["id"]
	d, err := s.store.GetDeck(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "deck not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.log.WithError(err).WithField("deck_id", id).Error("failed to load deck")
		http.Error(w, "failed to load deck", http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}

// export buffers the document so that a failure can still be reported
// with a status code.
func (s *Server) export(w http.ResponseWriter, r *http.Request, d *deck.Deck) {
	var buf bytes.Buffer
	report, err := s.exporter.ExportTo(r.Context(), d, &buf)
	if errors.Is(err, export.ErrInvalidDeckData) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to export deck", http.StatusInternalServerError)
		return
	}

	name := export.OutputPath("", d)
	w.Header().Set("Content-Type", PPTXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Deck-Slides", strconv.Itoa(report.Slides))
	w.Header().Set("X-Deck-Placeholders", strconv.Itoa(report.Placeholders))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.WithError(err).Warn("client went away during export download")
	}
}

func readDeck(w http.ResponseWriter, r *http.Request) (*deck.Deck, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDeckSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	d, err := deck.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrInvalidDeckData, err)
	}
	return d, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
