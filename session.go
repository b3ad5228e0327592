package main

import (
	"fmt"
	"log"
	"time"
)

// Phase is the state of a planning session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingStart
	PhaseAwaitingGoal
	PhaseGrowing
	PhaseGoalFound
	PhaseOptimizing
)

var phaseNames = [...]string{
	PhaseIdle:          "idle",
	PhaseAwaitingStart: "awaitingStart",
	PhaseAwaitingGoal:  "awaitingGoal",
	PhaseGrowing:       "growing",
	PhaseGoalFound:     "goalFound",
	PhaseOptimizing:    "optimizing",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TickResult reports what a single tick did
type TickResult struct {
	NewEdge     *Edge `json:"newEdge,omitempty"`
	Phase       Phase `json:"phase"`
	GoalReached bool  `json:"goalReached"`
	Failed      bool  `json:"failed"`
}

// Session drives one RRT from start selection to goal.
// It is not safe for concurrent use.
type Session struct {
	cfg     Config
	logger  *log.Logger
	field   *ObstacleField
	sampler *Sampler

	layout  int
	phase   Phase
	tree    *Tree
	start   *Point
	goal    *Point
	goalIdx int
	path    []Point // goal to root
	steps   int
	err     error
}

// NewSession creates an idle session. Custom layouts from cfg.LayoutsFile are
// registered before cfg.Layout is checked.
func NewSession(cfg Config, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	field := NewObstacleField(cfg.Width, cfg.Height)
	if cfg.LayoutsFile != "" {
		layouts, err := LoadLayoutsFromFile(cfg.LayoutsFile)
		if err != nil {
			return nil, err
		}
		for id, rects := range layouts {
			if err := field.RegisterLayout(id, rects); err != nil {
				return nil, err
			}
		}
	}
	if !field.HasLayout(cfg.Layout) {
		return nil, fmt.Errorf("layout %d: %w", cfg.Layout, ErrUnknownLayout)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Session{
		cfg:     cfg,
		logger:  logger,
		field:   field,
		sampler: NewSampler(cfg.Width, cfg.Height, seed, cfg.MaxSampleTries),
		layout:  cfg.Layout,
		goalIdx: NoParent,
	}, nil
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Err returns the failure that sent the session back to idle, if any
func (s *Session) Err() error {
	return s.err
}

// Layouts returns the obstacle layout ids the session accepts
func (s *Session) Layouts() []int {
	return s.field.LayoutIDs()
}

// NodeCount returns the size of the tree, zero before a start is chosen
func (s *Session) NodeCount() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Begin discards any tree, applies the selected layout and waits for a start point
func (s *Session) Begin() error {
	s.Reset()
	if err := s.field.Configure(s.layout); err != nil {
		return err
	}
	s.logger.Printf("config %d\n", s.layout)
	s.phase = PhaseAwaitingStart
	return nil
}

// ConfigureObstacles selects the layout applied on the next Begin. While
// awaiting a start point the layout is applied immediately.
func (s *Session) ConfigureObstacles(id int) error {
	if !s.field.HasLayout(id) {
		return fmt.Errorf("layout %d: %w", id, ErrUnknownLayout)
	}
	switch s.phase {
	case PhaseIdle:
		s.layout = id
	case PhaseAwaitingStart:
		if err := s.field.Configure(id); err != nil {
			return err
		}
		s.layout = id
		s.logger.Printf("config %d\n", id)
	default:
		return fmt.Errorf("configure obstacles while %s: %w", s.phase, ErrWrongPhase)
	}
	return nil
}

// SubmitPoint feeds a user-chosen start or goal point. Points inside an
// obstacle or outside the region are rejected and the phase is unchanged.
func (s *Session) SubmitPoint(p Point) (bool, error) {
	if s.phase != PhaseAwaitingStart && s.phase != PhaseAwaitingGoal {
		return false, fmt.Errorf("submit point while %s: %w", s.phase, ErrWrongPhase)
	}
	if !s.inRegion(p) || s.field.Collides(p) {
		return false, fmt.Errorf("(%.2f, %.2f): %w", p.X, p.Y, ErrInvalidPoint)
	}

	if s.phase == PhaseAwaitingStart {
		s.tree = NewTree(p)
		s.start = &p
		s.phase = PhaseAwaitingGoal
		s.logger.Printf("initial pose set: (%.2f, %.2f)\n", p.X, p.Y)
		return true, nil
	}

	s.goal = &p
	s.phase = PhaseGrowing
	s.logger.Printf("goal pose set: (%.2f, %.2f)\n", p.X, p.Y)
	return true, nil
}

func (s *Session) inRegion(p Point) bool {
	return p.X >= 0 && p.X <= s.cfg.Width && p.Y >= 0 && p.Y <= s.cfg.Height
}

// Tick advances the tree by one extension while growing and is a no-op otherwise
func (s *Session) Tick() TickResult {
	if s.phase != PhaseGrowing {
		return TickResult{Phase: s.phase}
	}
	if s.tree.Len() >= s.cfg.NodeBudget || s.steps >= s.cfg.NodeBudget {
		return s.fail(fmt.Errorf("%w after %d nodes", ErrExhausted, s.tree.Len()))
	}
	s.steps++

	res, err := s.extend()
	if err != nil {
		return s.fail(err)
	}

	result := TickResult{Phase: s.phase}
	if !res.Added {
		return result
	}
	result.NewEdge = &Edge{From: s.tree.Node(res.Parent).Point, To: res.Point}

	if s.tree.Len()%100 == 0 {
		s.logger.Printf("node: %d\n", s.tree.Len())
	}

	if PointInCircle(res.Point, *s.goal, s.cfg.GoalRadius) {
		s.goalIdx = res.Index
		s.phase = PhaseGoalFound
		s.logger.Printf("✅ Goal reached with %d nodes\n", s.tree.Len())
		s.optimize()
		result.GoalReached = true
		result.Phase = s.phase
	}
	return result
}

// extend draws fresh targets until some node admits a collision-free step
func (s *Session) extend() (ExtendResult, error) {
	minDist := 0.0
	if s.cfg.GateMinDistance {
		minDist = s.cfg.MinDistanceToAdd
	}

	for attempts := 1; ; attempts++ {
		target, err := s.sampler.UniformFree(s.field)
		if err != nil {
			return ExtendResult{}, fmt.Errorf("%w: %w", ErrExhausted, err)
		}
		if res, ok := s.tree.ExtendToward(target, s.field, s.cfg.StepSize, minDist); ok {
			return res, nil
		}
		if s.cfg.MaxExtendTries > 0 && attempts >= s.cfg.MaxExtendTries {
			return ExtendResult{}, fmt.Errorf("%w: no extendable node after %d targets", ErrExhausted, attempts)
		}
	}
}

// optimize traces the path from the goal node back to the root.
// No smoothing is applied.
func (s *Session) optimize() {
	s.path = s.tree.PathTo(s.goalIdx)
	s.phase = PhaseOptimizing
}

func (s *Session) fail(err error) TickResult {
	s.err = err
	s.phase = PhaseIdle
	s.logger.Printf("❌ Ran out of nodes... :( %v\n", err)
	if s.tree != nil && s.goal != nil {
		_, dist := s.tree.Nearest(*s.goal)
		s.logger.Printf("   Closest approach to goal: %.2f\n", dist)
	}
	return TickResult{Phase: s.phase, Failed: true}
}

// Path returns the route from start to goal once the goal has been reached
func (s *Session) Path() ([]Point, bool) {
	if s.phase != PhaseGoalFound && s.phase != PhaseOptimizing {
		return nil, false
	}
	path := make([]Point, len(s.path))
	for i, p := range s.path {
		path[len(s.path)-1-i] = p
	}
	return path, true
}

// Reset returns the session to idle and discards the tree
func (s *Session) Reset() {
	s.phase = PhaseIdle
	s.tree = nil
	s.start = nil
	s.goal = nil
	s.goalIdx = NoParent
	s.path = nil
	s.steps = 0
	s.err = nil
}

// Snapshot is a read-only view of a session for rendering and export
type Snapshot struct {
	Phase      Phase       `json:"phase"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Layout     int         `json:"layout"`
	Obstacles  []Rectangle `json:"obstacles"`
	Start      *Point      `json:"start,omitempty"`
	Goal       *Point      `json:"goal,omitempty"`
	GoalRadius float64     `json:"goalRadius"`
	NodeCount  int         `json:"nodeCount"`
	Edges      []Edge      `json:"edges"`
	Path       []Point     `json:"path,omitempty"`
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      s.phase,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Layout:     s.field.Layout(),
		Obstacles:  s.field.Rectangles(),
		GoalRadius: s.cfg.GoalRadius,
		NodeCount:  s.NodeCount(),
		Edges:      []Edge{},
	}
	if s.start != nil {
		start := *s.start
		snap.Start = &start
	}
	if s.goal != nil {
		goal := *s.goal
		snap.Goal = &goal
	}
	if s.tree != nil {
		snap.Edges = s.tree.Edges()
	}
	if path, ok := s.Path(); ok {
		snap.Path = path
	}
	return snap
}
