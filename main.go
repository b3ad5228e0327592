package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gogpu/gg"
)

// server hosts a single planning session over HTTP
type server struct {
	mu      sync.Mutex
	session *Session
}

type pointResponse struct {
	Accepted bool   `json:"accepted"`
	Phase    Phase  `json:"phase"`
	Message  string `json:"message,omitempty"`
}

type tickResponse struct {
	Ticks       int    `json:"ticks"`
	Edges       []Edge `json:"edges"`
	Phase       Phase  `json:"phase"`
	GoalReached bool   `json:"goalReached"`
	Failed      bool   `json:"failed"`
	NodeCount   int    `json:"nodeCount"`
	Message     string `json:"message,omitempty"`
}

type pathResponse struct {
	Path    []Point `json:"path"`
	Success bool    `json:"success"`
	Length  float64 `json:"length,omitempty"`
	Message string  `json:"message,omitempty"`
}

// maxTicksPerRequest bounds the work done by a single /tick call
const maxTicksPerRequest = 10000

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorStatus maps session errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownLayout), errors.Is(err, ErrInvalidPoint):
		return http.StatusBadRequest
	case errors.Is(err, ErrWrongPhase):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// POST /begin - Start a new session and wait for a start point
func (s *server) beginHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s.mu.Lock()
	err := s.session.Begin()
	phase := s.session.Phase()
	s.mu.Unlock()

	if err != nil {
		log.Printf("❌ Begin failed: %v\n", err)
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	log.Println("🚀 Session started, waiting for start point")
	writeJSON(w, http.StatusOK, map[string]interface{}{"phase": phase})
}

// POST /obstacles - Select an obstacle layout
func (s *server) obstaclesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Layout int `json:"layout"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.session.ConfigureObstacles(req.Layout)
	snap := s.session.Snapshot()
	s.mu.Unlock()

	if err != nil {
		log.Printf("❌ Layout %d rejected: %v\n", req.Layout, err)
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"layout":    req.Layout,
		"phase":     snap.Phase,
		"obstacles": snap.Obstacles,
	})
}

// POST /point - Submit a start or goal point. With ?restart=1 a point sent
// outside the selection phases restarts the session first.
func (s *server) pointHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var p Point
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	phase := s.session.Phase()
	if r.URL.Query().Get("restart") == "1" && phase != PhaseAwaitingStart && phase != PhaseAwaitingGoal {
		if err := s.session.Begin(); err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}
		writeJSON(w, http.StatusOK, pointResponse{Phase: s.session.Phase(), Message: "session restarted"})
		return
	}

	accepted, err := s.session.SubmitPoint(p)
	resp := pointResponse{Accepted: accepted, Phase: s.session.Phase()}
	if err != nil {
		log.Printf("⚠️  Point (%.2f, %.2f) rejected: %v\n", p.X, p.Y, err)
		resp.Message = err.Error()
		if errors.Is(err, ErrWrongPhase) {
			writeJSON(w, http.StatusConflict, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /tick - Advance the tree by one or more steps
func (s *server) tickHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	req := struct {
		Steps int `json:"steps"`
	}{Steps: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Invalid request body: %v\n", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.Steps <= 0 {
		req.Steps = 1
	}
	if req.Steps > maxTicksPerRequest {
		req.Steps = maxTicksPerRequest
	}

	s.mu.Lock()
	resp := runTicks(s.session, req.Steps)
	s.mu.Unlock()

	if resp.GoalReached {
		log.Printf("✅ Goal reached after %d nodes\n", resp.NodeCount)
	}
	writeJSON(w, http.StatusOK, resp)
}

// runTicks ticks up to n times, stopping early when the session leaves the growing phase
func runTicks(session *Session, n int) tickResponse {
	resp := tickResponse{Edges: []Edge{}, Phase: session.Phase()}
	for i := 0; i < n; i++ {
		res := session.Tick()
		resp.Ticks++
		resp.Phase = res.Phase
		if res.NewEdge != nil {
			resp.Edges = append(resp.Edges, *res.NewEdge)
		}
		if res.GoalReached {
			resp.GoalReached = true
		}
		if res.Failed {
			resp.Failed = true
			if err := session.Err(); err != nil {
				resp.Message = err.Error()
			}
		}
		if res.Phase != PhaseGrowing {
			break
		}
	}
	resp.NodeCount = session.NodeCount()
	return resp
}

// GET /path - Get the start-to-goal path once found
func (s *server) pathHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	path, ok := s.session.Path()
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusOK, pathResponse{Path: []Point{}, Message: "goal not reached yet"})
		return
	}
	writeJSON(w, http.StatusOK, pathResponse{Path: path, Success: true, Length: PathLength(path)})
}

// POST /reset - Return to idle and discard the tree
func (s *server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s.mu.Lock()
	s.session.Reset()
	phase := s.session.Phase()
	s.mu.Unlock()

	log.Println("🔄 Session reset")
	writeJSON(w, http.StatusOK, map[string]interface{}{"phase": phase})
}

// GET /tree - Get tree edges for visualization
func (s *server) treeHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	snap := s.session.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, snap)
}

// GET /geojson - Get the session as a GeoJSON FeatureCollection
func (s *server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	snap := s.session.Snapshot()
	s.mu.Unlock()

	data, err := SnapshotToGeoJSON(snap).MarshalJSON()
	if err != nil {
		log.Printf("❌ Failed to marshal GeoJSON: %v\n", err)
		http.Error(w, "failed to marshal GeoJSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

// GET /render.png - Render the session
func (s *server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	snap := s.session.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	if err := RenderSnapshot(w, snap); err != nil {
		log.Printf("❌ Render failed: %v\n", err)
	}
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	phase := s.session.Phase()
	numNodes := s.session.NodeCount()
	layouts := s.session.Layouts()
	var lastErr string
	if err := s.session.Err(); err != nil {
		lastErr = err.Error()
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"phase":    phase,
		"numNodes": numNodes,
		"layouts":  layouts,
		"error":    lastErr,
	})
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/begin", corsMiddleware(s.beginHandler))
	mux.HandleFunc("/obstacles", corsMiddleware(s.obstaclesHandler))
	mux.HandleFunc("/point", corsMiddleware(s.pointHandler))
	mux.HandleFunc("/tick", corsMiddleware(s.tickHandler))
	mux.HandleFunc("/path", corsMiddleware(s.pathHandler))
	mux.HandleFunc("/reset", corsMiddleware(s.resetHandler))
	mux.HandleFunc("/tree", corsMiddleware(s.treeHandler))
	mux.HandleFunc("/geojson", corsMiddleware(s.geojsonHandler))
	mux.HandleFunc("/render.png", corsMiddleware(s.renderHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// runHeadless plans between the configured start and goal and writes the
// result as <out>.png and <out>.geojson
func runHeadless(session *Session, cfg Config, out string) error {
	if cfg.Start == nil || cfg.Goal == nil {
		return errors.New("headless run needs start and goal in the config file")
	}

	if err := session.Begin(); err != nil {
		return err
	}
	if _, err := session.SubmitPoint(*cfg.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if _, err := session.SubmitPoint(*cfg.Goal); err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	resp := runTicks(session, cfg.NodeBudget+1)
	if resp.Failed {
		log.Printf("❌ No path found: %s\n", resp.Message)
	} else if path, ok := session.Path(); ok {
		log.Printf("✅ Path found with %d waypoints\n", len(path))
		log.Printf("   Length: %.2f\n", PathLength(path))
	}

	snap := session.Snapshot()

	pngFile, err := os.Create(out + ".png")
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer pngFile.Close()
	if err := RenderSnapshot(pngFile, snap); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	data, err := SnapshotToGeoJSON(snap).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(out+".geojson", data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("💾 Wrote %s.png and %s.geojson\n", out, out)
	if resp.Failed {
		return session.Err()
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	headless := flag.Bool("run", false, "plan once from the config's start and goal, then exit")
	out := flag.String("out", "rrt", "output prefix for -run")
	verbose := flag.Bool("verbose", false, "enable renderer logging")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 RRT Planner")
	log.Println("========================================")

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("✅ Loaded config from %s\n", *configPath)
	}
	if *verbose {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	session, err := NewSession(cfg, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("   Region: %.0f x %.0f, step %.2f, goal radius %.2f\n",
		cfg.Width, cfg.Height, cfg.StepSize, cfg.GoalRadius)
	log.Printf("   Layout: %d (available %v)\n", cfg.Layout, session.Layouts())
	log.Printf("   Node budget: %d\n", cfg.NodeBudget)

	if *headless {
		if err := runHeadless(session, cfg, *out); err != nil {
			log.Fatal(err)
		}
		return
	}

	srv := &server{session: session}

	log.Printf("Server starting on %s\n", *addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /begin        - Start a session")
	log.Println("  POST /obstacles    - Select an obstacle layout")
	log.Println("  POST /point        - Submit start, then goal")
	log.Println("  POST /tick         - Grow the tree")
	log.Println("  GET  /path         - Start-to-goal path")
	log.Println("  POST /reset        - Return to idle")
	log.Println("  GET  /tree         - Session snapshot")
	log.Println("  GET  /geojson      - Session as GeoJSON")
	log.Println("  GET  /render.png   - Session as PNG")
	log.Println("  GET  /health       - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		log.Fatal(err)
	}
}
