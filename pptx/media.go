package pptx

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/webp"
)

// maxImageFileSize is the maximum allowed size for a single media item.
const maxImageFileSize = 50 << 20 // 50 MB

// TransparentPNG is a 1x1 fully transparent PNG used in place of media that
// cannot be loaded.
var TransparentPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0B, 0x49, 0x44, 0x41,
	0x54, 0x78, 0xDA, 0x63, 0x60, 0x00, 0x02, 0x00,
	0x00, 0x05, 0x00, 0x01, 0xE9, 0xFA, 0xDC, 0xD8,
	0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44,
	0xAE, 0x42, 0x60, 0x82,
}

// MediaLoader fetches the bytes behind a picture reference.
type MediaLoader interface {
	// Load returns the media bytes and their MIME type. An empty MIME type
	// lets the writer sniff the format.
	Load(ctx context.Context, ref string) ([]byte, string, error)
}

// MediaLoaderFunc adapts a function to MediaLoader.
type MediaLoaderFunc func(ctx context.Context, ref string) ([]byte, string, error)

// Load calls f(ctx, ref).
func (f MediaLoaderFunc) Load(ctx context.Context, ref string) ([]byte, string, error) {
	return f(ctx, ref)
}

// DefaultMediaLoader resolves data URIs, http(s) URLs and local file paths.
type DefaultMediaLoader struct {
	Client  *http.Client
	BaseDir string // relative file references are resolved against it
	// RemoteOnly rejects every reference that is not a data URI or an
	// http(s) URL.
	RemoteOnly bool
}

// NewDefaultMediaLoader creates a loader whose HTTP requests time out after timeout.
func NewDefaultMediaLoader(timeout time.Duration) *DefaultMediaLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DefaultMediaLoader{Client: &http.Client{Timeout: timeout}}
}

// NewRemoteMediaLoader creates a loader that never touches the local file
// system. Use it when deck documents come from untrusted callers.
func NewRemoteMediaLoader(timeout time.Duration) *DefaultMediaLoader {
	l := NewDefaultMediaLoader(timeout)
	l.RemoteOnly = true
	return l
}

// Load implements MediaLoader.
func (l *DefaultMediaLoader) Load(ctx context.Context, ref string) ([]byte, string, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, "", fmt.Errorf("empty media reference")
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return l.fetch(ctx, ref)
	case l.RemoteOnly:
		return nil, "", fmt.Errorf("local media reference not allowed: %q", ref)
	case strings.HasPrefix(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse file url: %w", err)
		}
		return l.readFile(u.Path)
	default:
		return l.readFile(ref)
	}
}

func (l *DefaultMediaLoader) fetch(ctx context.Context, ref string) ([]byte, string, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build media request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch media: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageFileSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read media body: %w", err)
	}
	if len(data) > maxImageFileSize {
		return nil, "", fmt.Errorf("media too large: more than %d bytes", maxImageFileSize)
	}
	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = guessMimeFromPath(ref)
	}
	return data, mime, nil
}

func (l *DefaultMediaLoader) readFile(path string) ([]byte, string, error) {
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return nil, "", fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image file: %w", err)
	}
	return data, guessMimeFromPath(path), nil
}

// decodeDataURI decodes "data:<mime>[;base64],<payload>".
func decodeDataURI(ref string) ([]byte, string, error) {
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("malformed data uri")
	}
	meta, payload := ref[len("data:"):comma], ref[comma+1:]
	mime := meta
	isBase64 := false
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		mime = meta[:i]
		isBase64 = strings.Contains(meta[i:], ";base64")
	}
	if !isBase64 {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", fmt.Errorf("failed to unescape data uri: %w", err)
		}
		return []byte(s), mime, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some encoders drop the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode data uri: %w", err)
		}
	}
	return data, mime, nil
}

// mediaPart is a picture ready to be stored in the package.
type mediaPart struct {
	data   []byte
	mime   string
	width  int // pixels, 0 when unknown
	height int
}

// prepareMedia normalizes loaded bytes into a storable part: the MIME type is
// sniffed when missing, WebP is transcoded to PNG and the pixel size is read
// for fit calculations.
func prepareMedia(data []byte, mime string) (*mediaPart, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty media")
	}
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if mime == "image/svg+xml" {
		// no raster size; rendered stretched
		return &mediaPart{data: data, mime: mime}, nil
	}
	if mime == "image/webp" {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to transcode webp: %w", err)
		}
		b := img.Bounds()
		return &mediaPart{data: buf.Bytes(), mime: "image/png", width: b.Dx(), height: b.Dy()}, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image data: %w", err)
	}
	switch format {
	case "png", "jpeg", "gif", "bmp":
		mime = "image/" + format
	}
	return &mediaPart{data: data, mime: mime, width: cfg.Width, height: cfg.Height}, nil
}

// extension returns the package file extension for the part.
func (m *mediaPart) extension() string {
	switch m.mime {
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	case "image/svg+xml":
		return "svg"
	default:
		return "png"
	}
}

// transparentPart returns the stand-in part for unloadable media.
func transparentPart() *mediaPart {
	return &mediaPart{data: TransparentPNG, mime: "image/png", width: 1, height: 1}
}

// pictureGeometry is the placement of a picture after applying its fit mode.
type pictureGeometry struct {
	x, y, cx, cy int64
	// srcRect crop in 1/1000 of a percent per edge
	cropL, cropT, cropR, cropB int
}

// fitPicture computes the frame and crop for a picture of imgW x imgH pixels
// placed in the box (x, y, w, h) with the given fit.
func fitPicture(fit ImageFit, x, y, w, h int64, imgW, imgH int) pictureGeometry {
	g := pictureGeometry{x: x, y: y, cx: w, cy: h}
	if imgW <= 0 || imgH <= 0 || w <= 0 || h <= 0 {
		return g
	}
	boxRatio := float64(w) / float64(h)
	imgRatio := float64(imgW) / float64(imgH)
	switch fit {
	case ImageFitContain:
		if imgRatio > boxRatio {
			g.cy = int64(float64(w) / imgRatio)
			g.y = y + (h-g.cy)/2
		} else {
			g.cx = int64(float64(h) * imgRatio)
			g.x = x + (w-g.cx)/2
		}
	case ImageFitCover:
		if imgRatio > boxRatio {
			// too wide: crop left and right
			visible := boxRatio / imgRatio
			edge := int((1 - visible) / 2 * 100000)
			g.cropL, g.cropR = edge, edge
		} else if imgRatio < boxRatio {
			visible := imgRatio / boxRatio
			edge := int((1 - visible) / 2 * 100000)
			g.cropT, g.cropB = edge, edge
		}
	}
	return g
}
