package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func newTestServer() *Server {
	defaults := config.Default().Render
	defaults.TileSize = 16
	defaults.Workers = 2
	return NewServer(0, defaults, nil)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type sseEvent struct {
	Type string
	Data string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.Type != "" {
				events = append(events, current)
			}
			current = sseEvent{}
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan SSE body: %v", err)
	}
	return events
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp scene.ScenesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(resp.Groups) == 0 {
		t.Fatal("Expected at least one scene group")
	}

	found := map[string]bool{}
	for _, info := range resp.Groups[0].Scenes {
		found[info.ID] = true
	}
	for _, name := range scene.BuiltinNames() {
		if !found[name] {
			t.Errorf("Built-in scene %q missing from first group", name)
		}
	}
}

func TestHandleImage(t *testing.T) {
	rec := get(t, newTestServer(), "/api/image?scene=default&width=40&height=30&depth=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("Expected 40x30 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleImageFormats(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
	}{
		{"webp", "image/webp"},
		{"bmp", "image/bmp"},
		{"tiff", "image/tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := get(t, newTestServer(), "/api/image?scene=lighting&width=16&height=16&format="+tt.format)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Expected %s, got %s", tt.contentType, ct)
			}
			if rec.Body.Len() == 0 {
				t.Error("Expected a non-empty body")
			}
		})
	}
}

func TestHandleImageErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"width too small", "width=1", http.StatusBadRequest},
		{"width not a number", "width=abc", http.StatusBadRequest},
		{"height too large", "height=5000", http.StatusBadRequest},
		{"negative depth", "depth=-1", http.StatusBadRequest},
		{"depth too large", "depth=99", http.StatusBadRequest},
		{"unsupported format", "format=gif", http.StatusBadRequest},
		{"unknown scene", "scene=nonexistent&width=16&height=16", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(), "/api/image?"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("Expected JSON error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestHandleRenderStreamsTiles(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=default&width=32&height=32")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %s", ct)
	}

	events := parseSSE(t, rec.Body.String())
	tiles := 0
	var complete *sseEvent
	for i := range events {
		switch events[i].Type {
		case "tile":
			tiles++
			var update TileUpdate
			if err := json.Unmarshal([]byte(events[i].Data), &update); err != nil {
				t.Fatalf("Invalid tile event: %v", err)
			}
			if update.TotalTiles != 4 {
				t.Errorf("Expected 4 total tiles, got %d", update.TotalTiles)
			}
			if update.X != update.TileX*16 || update.Y != update.TileY*16 {
				t.Errorf("Tile origin (%d, %d) does not match grid (%d, %d)", update.X, update.Y, update.TileX, update.TileY)
			}
		case "complete":
			complete = &events[i]
		case "error":
			t.Fatalf("Unexpected error event: %s", events[i].Data)
		}
	}

	if tiles != 4 {
		t.Errorf("Expected 4 tile events, got %d", tiles)
	}
	if complete == nil {
		t.Fatal("Expected a complete event")
	}
	if events[len(events)-1].Type != "complete" {
		t.Errorf("Expected complete to be the last event, got %s", events[len(events)-1].Type)
	}

	var update CompleteUpdate
	if err := json.Unmarshal([]byte(complete.Data), &update); err != nil {
		t.Fatalf("Invalid complete event: %v", err)
	}
	if update.Stats.TotalPixels != 32*32 {
		t.Errorf("Expected %d pixels, got %d", 32*32, update.Stats.TotalPixels)
	}
	if update.Stats.PrimitiveCount == 0 {
		t.Error("Expected primitive count in stats")
	}

	raw, err := base64.StdEncoding.DecodeString(update.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("Expected 32x32 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleRenderErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"invalid width", "width=0", "Invalid request"},
		{"unknown scene", "scene=nonexistent&width=16&height=16", "unknown scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(), "/api/render?"+tt.query)
			events := parseSSE(t, rec.Body.String())
			if len(events) != 1 || events[0].Type != "error" {
				t.Fatalf("Expected a single error event, got %+v", events)
			}
			if !strings.Contains(events[0].Data, tt.message) {
				t.Errorf("Expected error containing %q, got %q", tt.message, events[0].Data)
			}
		})
	}
}

func TestParseRenderRequestDefaults(t *testing.T) {
	s := newTestServer()
	req, err := s.parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/image", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Scene != "default" || req.Width != 400 || req.Height != 400 || req.Depth != 3 {
		t.Errorf("Unexpected defaults %+v", req)
	}
	if req.Format != "png" {
		t.Errorf("Expected png default, got %s", req.Format)
	}
}

func TestSceneFilesOutsideListingAreRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.yaml")
	if err := os.WriteFile(path, []byte("background: [7, 8, 9]\n"), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	for _, name := range []string{path, "yaml:" + path, "yaml:../../scenes/reflections"} {
		query := "scene=" + url.QueryEscape(name) + "&width=16&height=16"
		for _, endpoint := range []string{"/api/image", "/api/inspect"} {
			t.Run(endpoint+" "+name, func(t *testing.T) {
				rec := get(t, newTestServer(), endpoint+"?"+query)
				if rec.Code != http.StatusNotFound {
					t.Errorf("Expected status 404, got %d: %s", rec.Code, rec.Body.String())
				}
			})
		}

		t.Run("/api/render "+name, func(t *testing.T) {
			rec := get(t, newTestServer(), "/api/render?"+query)
			events := parseSSE(t, rec.Body.String())
			if len(events) != 1 || events[0].Type != "error" {
				t.Fatalf("Expected a single error event, got %+v", events)
			}
			if !strings.Contains(events[0].Data, "unknown scene") {
				t.Errorf("Expected unknown scene error, got %s", events[0].Data)
			}
		})
	}
}
