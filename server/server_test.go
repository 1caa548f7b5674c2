package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/export"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/store"
)

const testDeck = `{"title": "Demo", "sections": [
	{"id": "s1", "title": "Hello", "components": [
		{"id": "t", "type": "text", "data": {"text": "Hi there"}, "layout": {"x": 10, "y": 10, "width": 200, "height": 50}}
	]}
]}`

func newTestServer(t *testing.T) (*Server, *store.SQLiteStore) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	log, _ := test.NewNullLogger()
	return New(st, export.NewExporter(ExporterOptions(export.DefaultOptions()), log), log), st
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func assertPPTX(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != PPTXContentType {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
	body := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("body is not a zip: %v", err)
	}
	var found bool
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide1.xml" {
			found = true
		}
	}
	if !found {
		t.Error("slide1.xml missing from export")
	}
}

func TestSaveGetAndExportStoredDeck(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/decks", testDeck)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d body=%s", rec.Code, rec.Body.String())
	}
	var created struct{ ID string }
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("bad save response %q: %v", rec.Body.String(), err)
	}

	rec = do(t, s, http.MethodGet, "/api/decks/"+created.ID, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Hi there") {
		t.Errorf("get status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/decks", "")
	var list []store.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 || list[0].Title != "Demo" {
		t.Errorf("list = %s (%v)", rec.Body.String(), err)
	}

	rec = do(t, s, http.MethodGet, "/api/decks/"+created.ID+"/export", "")
	assertPPTX(t, rec)
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "Demo.pptx") {
		t.Errorf("disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	if rec.Header().Get("X-Deck-Slides") != "1" {
		t.Errorf("slides header = %q", rec.Header().Get("X-Deck-Slides"))
	}

	rec = do(t, s, http.MethodDelete, "/api/decks/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestExportPostedDeck(t *testing.T) {
	s, _ := newTestServer(t)
	assertPPTX(t, do(t, s, http.MethodPost, "/api/export", testDeck))
}

func TestExportPostedDeckIgnoresLocalFiles(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xAA
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(t.TempDir(), "secret.png")
	if err := os.WriteFile(secret, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	src, _ := json.Marshal(secret)
	body := fmt.Sprintf(`{"title": "Leak", "sections": [{"id": "s1", "components": [
		{"id": "img", "type": "image", "data": {"src": %s}, "layout": {"x": 0, "y": 0, "width": 100, "height": 100}}
	]}]}`, src)

	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/export", body)
	assertPPTX(t, rec)

	out := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatal(err)
	}
	var media []byte
	for _, f := range zr.File {
		if f.Name != "ppt/media/image1.png" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		media, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
	}
	if media == nil {
		t.Fatal("picture part missing from export")
	}
	if bytes.Equal(media, buf.Bytes()) {
		t.Fatal("export embedded a file from the server's disk")
	}
	if !bytes.Equal(media, pptx.TransparentPNG) {
		t.Errorf("local reference should become the transparent stand-in, got %d bytes", len(media))
	}
}

func TestErrorStatuses(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"export invalid json", http.MethodPost, "/api/export", `[1, 2]`, http.StatusBadRequest},
		{"save invalid json", http.MethodPost, "/api/decks", `{"title":`, http.StatusBadRequest},
		{"unknown deck", http.MethodGet, "/api/decks/missing", "", http.StatusNotFound},
		{"export unknown deck", http.MethodGet, "/api/decks/missing/export", "", http.StatusNotFound},
		{"delete unknown deck", http.MethodDelete, "/api/decks/missing", "", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/export", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

type failingStore struct {
	DeckStore
}

func (failingStore) GetDeck(ctx context.Context, id string) (*deck.Deck, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreFailureIs500(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := New(failingStore{}, export.NewExporter(export.DefaultOptions(), log), log)
	rec := do(t, s, http.MethodGet, "/api/decks/x/export", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["deck_id"] != "x" {
		t.Error("store failure should be logged with the deck id")
	}
}
