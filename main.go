package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
)

// BoundingBox is the planning region in request bodies.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// SolveRequest configures one planning problem. Zero values fall back to
// the reference setup: unit bounds, ±0.3 controls, 0.05 tolerance, fixed
// 0.1 step, 20 second budget.
type SolveRequest struct {
	Bounds          BoundingBox `json:"bounds"`
	ControlLow      float64     `json:"controlLow,omitempty"`
	ControlHigh     float64     `json:"controlHigh,omitempty"`
	Start           State       `json:"start"`
	Goal            State       `json:"goal"`
	GoalTolerance   float64     `json:"goalTolerance,omitempty"`
	TimeBudgetSec   float64     `json:"timeBudgetSeconds,omitempty"`
	MaxIterations   int         `json:"maxIterations,omitempty"`
	GoalBias        float64     `json:"goalBias,omitempty"`
	Seed            int64       `json:"seed,omitempty"`
	MinStep         float64     `json:"minStep,omitempty"`
	MaxStep         float64     `json:"maxStep,omitempty"`
	YawWeight       float64     `json:"yawWeight,omitempty"`
	UseSpatialIndex bool        `json:"useSpatialIndex,omitempty"`
}

// SolveResponse reports one planning outcome.
type SolveResponse struct {
	Success    bool       `json:"success"`
	Status     string     `json:"status"`
	Path       []Waypoint `json:"path,omitempty"`
	Iterations int        `json:"iterations"`
	TreeSize   int        `json:"treeSize"`
	ElapsedSec float64    `json:"elapsedSeconds"`
	Message    string     `json:"message,omitempty"`
}

var (
	globalObstacles *ObstacleIndex
	obstacleMutex   sync.RWMutex
)

// applyDefaults fills the reference setup into unset request fields.
func (req *SolveRequest) applyDefaults() {
	if req.Bounds.MinX == 0 && req.Bounds.MaxX == 0 {
		req.Bounds.MinX, req.Bounds.MaxX = -1, 1
	}
	if req.Bounds.MinY == 0 && req.Bounds.MaxY == 0 {
		req.Bounds.MinY, req.Bounds.MaxY = -1, 1
	}
	if req.ControlLow == 0 && req.ControlHigh == 0 {
		req.ControlLow, req.ControlHigh = -0.3, 0.3
	}
	if req.GoalTolerance == 0 {
		req.GoalTolerance = 0.05
	}
	if req.TimeBudgetSec == 0 {
		req.TimeBudgetSec = 20
	}
	if req.MinStep == 0 {
		req.MinStep = DefaultStep
	}
	if req.MaxStep == 0 {
		req.MaxStep = req.MinStep
	}
}

// spacesFromRequest builds the state and control spaces a request asks for.
func spacesFromRequest(req *SolveRequest) (*StateSpace, *ControlSpace) {
	space := &StateSpace{
		XBounds:   Interval{Low: req.Bounds.MinX, High: req.Bounds.MaxX},
		YBounds:   Interval{Low: req.Bounds.MinY, High: req.Bounds.MaxY},
		YawWeight: req.YawWeight,
	}
	controls := &ControlSpace{
		VBounds:     Interval{Low: req.ControlLow, High: req.ControlHigh},
		OmegaBounds: Interval{Low: req.ControlLow, High: req.ControlHigh},
		MinStep:     req.MinStep,
		MaxStep:     req.MaxStep,
	}
	return space, controls
}

// checkerFor returns the obstacle-aware checker when obstacles are loaded,
// otherwise the bounds-only default.
func checkerFor(space *StateSpace) ValidityChecker {
	obstacleMutex.RLock()
	obstacles := globalObstacles
	obstacleMutex.RUnlock()

	if obstacles.Size() > 0 {
		return ObstacleChecker{Space: space, Obstacles: obstacles}
	}
	return BoundsChecker{Space: space}
}

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

// POST /solve - Plan one start/goal problem
func solveHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Solve request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.applyDefaults()

	log.Printf("   Start: (%.4f, %.4f, yaw %.3f)\n", req.Start.X, req.Start.Y, req.Start.Yaw)
	log.Printf("   Goal:  (%.4f, %.4f, yaw %.3f)\n", req.Goal.X, req.Goal.Y, req.Goal.Yaw)
	log.Printf("   Tolerance: %.3f, budget: %.1fs\n", req.GoalTolerance, req.TimeBudgetSec)

	space, controls := spacesFromRequest(&req)
	planner := NewPlanner(space, controls, UnicyclePropagator{}, checkerFor(space), PlannerConfig{
		GoalBias:        req.GoalBias,
		Seed:            req.Seed,
		UseSpatialIndex: req.UseSpatialIndex,
	})

	prob := &ProblemDefinition{
		Start:         req.Start,
		Goal:          req.Goal,
		GoalTolerance: req.GoalTolerance,
		TimeBudget:    time.Duration(req.TimeBudgetSec * float64(time.Second)),
		MaxIterations: req.MaxIterations,
	}

	sol, err := planner.Solve(prob)
	if err != nil {
		log.Printf("❌ %v\n", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{Success: false, Message: err.Error()})
		log.Println("========================================")
		return
	}

	response := SolveResponse{
		Success:    sol.Status == Solved,
		Status:     sol.Status.String(),
		Path:       sol.Path,
		Iterations: sol.Iterations,
		TreeSize:   sol.TreeSize,
		ElapsedSec: sol.Elapsed.Seconds(),
	}

	if sol.Status == Solved {
		last := sol.Path[len(sol.Path)-1].State
		log.Printf("✅ Solved with %d waypoints after %d iterations\n", len(sol.Path), sol.Iterations)
		log.Printf("   Final state: (%.4f, %.4f, yaw %.3f)\n", last.X, last.Y, last.Yaw)
		log.Printf("   ⏱️  Solve time: %.3f seconds\n", sol.Elapsed.Seconds())
	} else {
		log.Printf("❌ Budget exhausted: %d iterations, %d nodes\n", sol.Iterations, sol.TreeSize)
		response.Message = "Budget exhausted without reaching the goal region"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
	log.Println("========================================")
}

// POST /batch - Enumerate grid start/goal pairs and solve them in parallel
func batchHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Batch request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type BatchRequest struct {
		SolveRequest
		MaxPairs int `json:"maxPairs,omitempty"`
		Workers  int `json:"workers,omitempty"`
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.applyDefaults()
	if req.MaxPairs == 0 {
		req.MaxPairs = 100 // full enumerations exceed a million pairs
	}

	space, controls := spacesFromRequest(&req.SolveRequest)
	checker := checkerFor(space)

	pairs := GridStartGoalPairs(space, checker)
	log.Printf("   Enumerated %d candidate pairs\n", len(pairs))

	results, err := SolveBatch(space, controls, UnicyclePropagator{}, checker, pairs, BatchConfig{
		Planner: PlannerConfig{
			GoalBias:        req.GoalBias,
			Seed:            req.Seed,
			UseSpatialIndex: req.UseSpatialIndex,
		},
		Problem: ProblemDefinition{
			GoalTolerance: req.GoalTolerance,
			TimeBudget:    time.Duration(req.TimeBudgetSec * float64(time.Second)),
			MaxIterations: req.MaxIterations,
		},
		MaxPairs: req.MaxPairs,
		Workers:  req.Workers,
	})
	if err != nil {
		log.Printf("❌ %v\n", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		log.Println("========================================")
		return
	}

	solved := 0
	statuses := make([]string, len(results))
	for i, res := range results {
		statuses[i] = res.Solution.Status.String()
		if res.Solution.Status == Solved {
			solved++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"numPairs":   len(results),
		"numSolved":  solved,
		"statuses":   statuses,
		"totalPairs": len(pairs),
	})
	log.Println("========================================")
}

// POST /loadObstacles - Load obstacle polygons from a GeoJSON directory
func loadObstaclesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🚧 Load obstacles request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type LoadRequest struct {
		Dir             string  `json:"dir"`
		SimplifyEpsilon float64 `json:"simplifyEpsilon,omitempty"`
	}

	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Dir == "" {
		req.Dir = "obstacles"
	}

	polygons, err := LoadObstacles(req.Dir)
	if err != nil {
		log.Printf("❌ Failed to load obstacles: %v\n", err)
		http.Error(w, "Failed to load obstacles", http.StatusBadRequest)
		return
	}

	polygons = PruneContained(polygons)
	polygons = SimplifyObstacles(polygons, req.SimplifyEpsilon)
	index := NewObstacleIndex(polygons)

	obstacleMutex.Lock()
	globalObstacles = index
	obstacleMutex.Unlock()

	log.Printf("✅ Obstacle index rebuilt with %d polygons\n", index.Size())
	log.Println("========================================")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"numObstacles": index.Size(),
	})
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	obstacleMutex.RLock()
	numObstacles := globalObstacles.Size()
	obstacleMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       "ready",
		"numObstacles": numObstacles,
	})
}

func main() {
	log.Println("========================================")
	log.Println("🚀 Kinodynamic Motion Planner Server (RRT)")
	log.Println("========================================")
	log.Println("Checking for obstacle GeoJSON files...")

	if polygons, err := LoadObstacles("obstacles"); err == nil && len(polygons) > 0 {
		polygons = PruneContained(polygons)
		index := NewObstacleIndex(polygons)
		obstacleMutex.Lock()
		globalObstacles = index
		obstacleMutex.Unlock()
		log.Printf("✅ Obstacle index ready: %d polygons\n", index.Size())
	} else {
		log.Println("ℹ️  No obstacles found (this is normal; planning is bounds-only)")
		log.Println("   Call /loadObstacles to add obstacle polygons")
	}
	log.Println("")

	http.HandleFunc("/solve", corsMiddleware(solveHandler))
	http.HandleFunc("/batch", corsMiddleware(batchHandler))
	http.HandleFunc("/loadObstacles", corsMiddleware(loadObstaclesHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Println("Server starting on :8080")
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /solve          - Plan one start/goal problem")
	log.Println("  POST /batch          - Enumerate grid pairs and solve in parallel")
	log.Println("  POST /loadObstacles  - Load obstacle polygons from GeoJSON")
	log.Println("  GET  /health         - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal(err)
	}
}
