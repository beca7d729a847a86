package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits shared by every endpoint
const (
	MinImageSize    = 16
	MaxImageSize    = 2000
	MaxDepthLimit   = 10
	DefaultTileSize = 64
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	defaults config.RenderConfig
	logger   *zap.SugaredLogger
}

// NewServer creates a new web server. Render requests fall back to defaults
// for any parameter they omit.
func NewServer(port int, defaults config.RenderConfig, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if defaults.TileSize <= 0 {
		defaults.TileSize = DefaultTileSize
	}
	return &Server{port: port, defaults: defaults, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        `json:"scene"`  // Built-in name or discovered scene ID
	Width  int           `json:"width"`  // Image width
	Height int           `json:"height"` // Image height
	Depth  int           `json:"depth"`  // Maximum reflection depth
	Format output.Format `json:"format"` // Encoding for /api/image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	PrimaryHits    int     `json:"primaryHits"`
	ReflectionRays int     `json:"reflectionRays"`
	ShadowRays     int     `json:"shadowRays"`
	HitRatio       float64 `json:"hitRatio"`
	PrimitiveCount int     `json:"primitiveCount"`
}

func newStats(s renderer.RenderStats, primitives int) Stats {
	return Stats{
		TotalPixels:    s.TotalPixels,
		PrimaryHits:    s.PrimaryHits,
		ReflectionRays: s.ReflectionRays,
		ShadowRays:     s.ShadowRays,
		HitRatio:       s.HitRatio(),
		PrimitiveCount: primitives,
	}
}

// Handler returns the HTTP routes served by this server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infof("Starting web server on http://localhost%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		s.logger.Errorf("Error listing scenes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleImage renders a whole image and returns it encoded in the requested format
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := scene.CreateListed(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	raytracer := s.newRaytracer(sceneObj, req, s.logger)
	start := time.Now()
	img, stats, err := raytracer.Render(r.Context(), nil)
	if err != nil {
		s.logger.Infof("Image render aborted: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		s.logger.Errorf("Error encoding %s image: %v", req.Format, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.logger.Infof("Rendered %s %dx%d depth %d in %v (%d bytes %s)",
		req.Scene, req.Width, req.Height, req.Depth, time.Since(start), buf.Len(), req.Format)

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("X-Render-Shadow-Rays", strconv.Itoa(stats.ShadowRays))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// newRaytracer builds a parallel raytracer for a request
func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.ParallelRaytracer {
	camera := renderer.NewCamera(s.cameraConfig(req))
	trace := renderer.TraceConfig{MaxDepth: req.Depth}
	parallel := renderer.ParallelConfig{
		TileSize:   s.defaults.TileSize,
		NumWorkers: s.defaults.Workers,
	}
	return renderer.NewParallelRaytracer(sceneObj, camera, trace, parallel, logger)
}

func (s *Server) cameraConfig(req *RenderRequest) renderer.CameraConfig {
	cfg := renderer.CameraConfig{
		Width:            req.Width,
		Height:           req.Height,
		ViewportSize:     s.defaults.ViewportSize,
		ProjectionPlaneD: s.defaults.ProjectionPlaneD,
	}
	def := renderer.DefaultCameraConfig()
	if cfg.ViewportSize <= 0 {
		cfg.ViewportSize = def.ViewportSize
	}
	if cfg.ProjectionPlaneD <= 0 {
		cfg.ProjectionPlaneD = def.ProjectionPlaneD
	}
	return cfg
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: s.defaults.Scene}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", s.defaultSize(s.defaults.Width), MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", s.defaultSize(s.defaults.Height), MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", s.defaultDepth(), 0, MaxDepthLimit); err != nil {
		return nil, err
	}

	req.Format = output.PNG
	if f := query.Get("format"); f != "" {
		if req.Format, err = output.ParseFormat(f); err != nil {
			return nil, err
		}
	}

	// Performance warning
	if req.Width*req.Height > 1000*1000 && req.Depth > 5 {
		s.logger.Warnf("Render warning: large image with deep reflections may render slowly")
	}

	return req, nil
}

func (s *Server) defaultSize(v int) int {
	if v < MinImageSize || v > MaxImageSize {
		return renderer.DefaultCameraConfig().Width
	}
	return v
}

func (s *Server) defaultDepth() int {
	if s.defaults.MaxDepth < 0 || s.defaults.MaxDepth > MaxDepthLimit {
		return renderer.DefaultTraceConfig().MaxDepth
	}
	return s.defaults.MaxDepth
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
