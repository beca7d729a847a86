package server

import (
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel origin of the tile
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate is the final event of a successful render
type CompleteUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the full image
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
	Stats            Stats   `json:"stats"`
}

// SSEEvent is one server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data or a plain message
}

type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders with real-time tile streaming via SSE. The handler
// goroutine is the only writer to the response.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)

	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := scene.CreateListed(req.Scene)
	if err != nil {
		s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	// Console messages from the renderer are streamed alongside tiles
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, s.logger, consoleChan)

	raytracer := s.newRaytracer(sceneObj, req, webLogger)
	tileChan := make(chan renderer.TileCompletionResult, 16)
	doneChan := make(chan renderOutcome, 1)

	startTime := time.Now()
	go func() {
		img, stats, err := raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
			select {
			case tileChan <- tile:
			case <-ctx.Done():
			}
		})
		doneChan <- renderOutcome{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case tile := <-tileChan:
			s.sendTile(w, flusher, tile)

		case msg := <-consoleChan:
			s.sendConsole(w, flusher, msg)

		case outcome := <-doneChan:
			// Flush what the render produced before it returned
			s.drainTiles(w, flusher, tileChan)
			s.drainConsole(w, flusher, consoleChan)

			if outcome.err != nil {
				s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", outcome.err)})
				return
			}
			s.sendComplete(w, flusher, outcome, sceneObj, time.Since(startTime))
			return

		case <-ctx.Done():
			// Client disconnected; the render goroutine exits on the same context
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func (s *Server) drainTiles(w http.ResponseWriter, flusher http.Flusher, tileChan <-chan renderer.TileCompletionResult) {
	for {
		select {
		case tile := <-tileChan:
			s.sendTile(w, flusher, tile)
		default:
			return
		}
	}
}

func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsole(w, flusher, msg)
		default:
			return
		}
	}
}

// sendTile encodes and sends one tile update
func (s *Server) sendTile(w http.ResponseWriter, flusher http.Flusher, tile renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tile.TileImage)
	if err != nil {
		s.logger.Errorf("Error encoding tile image (%d, %d): %v", tile.TileX, tile.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		ImageData:  tileData,
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	}
	s.sendJSON(w, flusher, "tile", update)
}

func (s *Server) sendConsole(w http.ResponseWriter, flusher http.Flusher, msg ConsoleMessage) {
	s.sendJSON(w, flusher, "console", msg)
}

// sendComplete sends the full image and final statistics
func (s *Server) sendComplete(w http.ResponseWriter, flusher http.Flusher, outcome renderOutcome, sceneObj *scene.Scene, elapsed time.Duration) {
	imageData, err := imageToBase64PNG(outcome.img)
	if err != nil {
		s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)})
		return
	}

	bounds := outcome.img.Bounds()
	s.sendJSON(w, flusher, "complete", CompleteUpdate{
		ImageData:        imageData,
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		ElapsedMs:        elapsed.Milliseconds(),
		AverageLuminance: renderer.CalculateAverageLuminance(outcome.img),
		Stats:            newStats(outcome.stats, sceneObj.GetPrimitiveCount()),
	})
}

func (s *Server) sendJSON(w http.ResponseWriter, flusher http.Flusher, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	s.writeSSEEvent(w, flusher, SSEEvent{Type: eventType, Data: string(data)})
}

// writeSSEEvent writes one event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		s.logger.Debugf("SSE write failed: %v", err)
		return
	}
	flusher.Flush()
}
