package tetris

// ActivePiece is the piece currently falling or grounded.
type ActivePiece struct {
	Kind     PieceKind
	Rotation Rotation
	X, Y     int
}

// Event describes the outcome of a tick that locked a piece.
type Event struct {
	Locked         bool
	LinesCleared   int
	LineClearScore int
	TSpin          TSpinKind
	Combo          int
	BackToBack     bool
}

// State is the full game state machine: it owns the board, active
// piece, hold slot, next queue, timers, episode counters and scoring
// context, and integrates them via ApplyAction and Tick.
type State struct {
	Phase GamePhase

	Board  *Board
	Active *ActivePiece

	Hold          PieceKind // 0 = empty
	CanHold       bool
	NextQueue     []PieceKind
	generator     *PieceQueue

	Score int
	Lines int
	Level int
	combo int // -1 when no chain
	b2b   bool

	DropMS      int
	LockMS      int
	LineClearMS int
	lockResets  int

	lastActionWasRotation bool
	pendingHardDrop       bool

	EpisodeID   int
	Seed        uint32
	PieceID     int
	StepInPiece int
	BoardID     int

	LastEvent *Event

	paused bool
}

// NewState creates a game state and immediately restarts it with the
// given seed, entering Playing.
func NewState(seed uint32) *State {
	s := &State{Board: NewBoard()}
	s.Restart(&seed)
	return s
}

// Restart resets the episode. If seed is nil, a new seed is derived from
// the previous seed and episode counter (see pseudoSeed) and stored in
// Seed so the caller can observe what was chosen. Restart always leaves
// the game in Playing, regardless of the phase it started in.
func (s *State) Restart(seed *uint32) {
	var actualSeed uint32
	if seed != nil {
		actualSeed = *seed
	} else {
		actualSeed = pseudoSeed(s)
	}

	s.EpisodeID++
	s.Seed = actualSeed
	s.Board.Clear()
	s.Active = nil
	s.Hold = 0
	s.CanHold = true
	s.generator = NewPieceQueue(actualSeed)
	s.NextQueue = s.generator.Peek(NextQueueLen)
	for i := 0; i < NextQueueLen; i++ {
		s.generator.Draw()
	}
	// generator is now positioned past the initial NextQueue lookahead;
	// spawning draws from NextQueue directly and refills its tail.

	s.Score = 0
	s.Lines = 0
	s.Level = 0
	s.combo = -1
	s.b2b = false

	s.DropMS = 0
	s.LockMS = 0
	s.LineClearMS = 0
	s.lockResets = 0

	s.lastActionWasRotation = false
	s.pendingHardDrop = false

	s.PieceID = 0
	s.StepInPiece = 0
	s.BoardID = 0

	s.LastEvent = nil
	s.paused = false
	s.Phase = PhasePlaying
}

// pseudoSeed derives a fresh seed when none is supplied, from whatever
// entropy the state already carries (episode counter and prior seed).
// This keeps Restart free of any dependency on wall-clock time so the
// core stays a pure function of its inputs; callers that want true
// randomness supply an externally-chosen seed instead.
func pseudoSeed(s *State) uint32 {
	mixed := s.Seed*1664525 + 1013904223 + uint32(s.EpisodeID)*2654435761
	if mixed == 0 {
		mixed = 1
	}
	return mixed
}

// GameOver reports whether the machine is in the terminal phase.
func (s *State) GameOver() bool { return s.Phase == PhaseGameOver }

// Paused reports whether the machine is paused.
func (s *State) Paused() bool { return s.Phase == PhasePaused }

// Playable reports whether the game can currently accept gameplay
// actions (not paused, not over).
func (s *State) Playable() bool { return s.Phase == PhasePlaying }

func (s *State) advanceQueue() PieceKind {
	next := s.NextQueue[0]
	s.NextQueue = append(s.NextQueue[1:], s.generator.Draw())
	return next
}

func (s *State) spawn(kind PieceKind) bool {
	p := &ActivePiece{Kind: kind, Rotation: North, X: SpawnX, Y: SpawnY}
	shape := GetShape(kind, North)
	if s.Board.Collides(shape, p.X, p.Y) {
		return false
	}
	s.Active = p
	s.PieceID++
	s.StepInPiece = 0
	s.CanHold = true
	s.lockResets = 0
	s.LockMS = 0
	s.DropMS = 0
	s.lastActionWasRotation = false
	return true
}

func (s *State) isGrounded() bool {
	if s.Active == nil {
		return false
	}
	shape := GetShape(s.Active.Kind, s.Active.Rotation)
	return s.Board.Collides(shape, s.Active.X, s.Active.Y+1)
}

func (s *State) refreshLockOnGroundedMove() {
	if s.isGrounded() && s.lockResets < LockResetLimit {
		s.LockMS = 0
		s.lockResets++
	}
}

// ApplyAction applies a single player action to the state, respecting
// the phase-dependent gating rules in the specification.
func (s *State) ApplyAction(action Action) {
	switch s.Phase {
	case PhasePaused:
		switch action {
		case Pause:
			s.Phase = PhasePlaying
		case Restart:
			s.Restart(nil)
		}
		return
	case PhaseGameOver:
		if action == Restart {
			s.Restart(nil)
		}
		return
	}

	if action == Pause {
		s.Phase = PhasePaused
		return
	}
	if action == Restart {
		s.Restart(nil)
		return
	}
	if s.LineClearMS > 0 {
		return
	}
	if s.Active == nil {
		return
	}

	switch action {
	case MoveLeft:
		s.tryTranslate(-1, 0)
	case MoveRight:
		s.tryTranslate(1, 0)
	case SoftDrop:
		if s.tryTranslate(0, 1) {
			s.Score += DropScore(1, false)
		}
	case HardDrop:
		s.hardDrop()
	case RotateCw:
		s.tryRotate(true)
	case RotateCcw:
		s.tryRotate(false)
	case Hold:
		s.hold()
	}
}

// RestartSeeded restarts with an explicit seed, used by the adapter's
// restart{seed} command.
func (s *State) RestartSeeded(seed uint32) {
	s.Restart(&seed)
}

func (s *State) tryTranslate(dx, dy int) bool {
	shape := GetShape(s.Active.Kind, s.Active.Rotation)
	nx, ny := s.Active.X+dx, s.Active.Y+dy
	if s.Board.Collides(shape, nx, ny) {
		return false
	}
	s.Active.X, s.Active.Y = nx, ny
	s.lastActionWasRotation = false
	s.refreshLockOnGroundedMove()
	return true
}

func (s *State) tryRotate(cw bool) bool {
	isValid := func(x, y int) bool { return !s.Board.IsFilled(x, y) }
	shape, to, kick, ok := TryRotate(s.Active.Kind, s.Active.Rotation, s.Active.X, s.Active.Y, cw, isValid)
	if !ok {
		return false
	}
	_ = shape
	s.Active.Rotation = to
	s.Active.X += kick.DX
	s.Active.Y += kick.DY
	s.lastActionWasRotation = true
	s.refreshLockOnGroundedMove()
	return true
}

func (s *State) hardDrop() {
	shape := GetShape(s.Active.Kind, s.Active.Rotation)
	traveled := 0
	for !s.Board.Collides(shape, s.Active.X, s.Active.Y+1) {
		s.Active.Y++
		traveled++
	}
	s.Score += DropScore(traveled, true)
	s.lastActionWasRotation = false
	s.pendingHardDrop = true
}

func (s *State) hold() {
	if !s.CanHold {
		return
	}
	current := s.Active.Kind
	if s.Hold == 0 {
		s.Hold = current
		if !s.spawn(s.advanceQueue()) {
			s.Phase = PhaseGameOver
		}
	} else {
		swapped := s.Hold
		s.Hold = current
		if !s.spawn(swapped) {
			s.Phase = PhaseGameOver
		}
	}
	s.CanHold = false
}

// GhostY computes the deepest collision-free row for the active piece.
func (s *State) GhostY() int {
	if s.Active == nil {
		return 0
	}
	shape := GetShape(s.Active.Kind, s.Active.Rotation)
	y := s.Active.Y
	for !s.Board.Collides(shape, s.Active.X, y+1) {
		y++
	}
	return y
}

// Tick advances the fixed-step simulation by elapsedMS, applying
// gravity, lock delay and lock/line-clear resolution as described by
// the specification's tick sub-phases.
func (s *State) Tick(elapsedMS int, softDrop bool) {
	if s.Phase != PhasePlaying {
		return
	}
	s.LastEvent = nil

	if s.LineClearMS > 0 {
		s.LineClearMS -= elapsedMS
		if s.LineClearMS > 0 {
			s.StepInPiece++
			return
		}
		s.LineClearMS = 0
	}

	if s.Active == nil {
		kind := s.advanceQueue()
		if !s.spawn(kind) {
			s.Phase = PhaseGameOver
			return
		}
	}

	mult := 1
	if softDrop {
		mult = SoftDropMult
	}
	s.DropMS += elapsedMS * mult
	interval := DropIntervalMS(s.Level)
	for s.DropMS >= interval {
		shape := GetShape(s.Active.Kind, s.Active.Rotation)
		if s.Board.Collides(shape, s.Active.X, s.Active.Y+1) {
			break
		}
		s.Active.Y++
		s.DropMS -= interval
		s.lastActionWasRotation = false
	}

	grounded := s.isGrounded()
	if grounded {
		s.LockMS += elapsedMS
	} else {
		s.LockMS = 0
	}

	if (grounded && s.LockMS >= LockDelayMS) || s.pendingHardDrop {
		s.lockPiece()
	}

	s.StepInPiece++
}

func (s *State) lockPiece() {
	p := s.Active
	shape := GetShape(p.Kind, p.Rotation)

	tspin := TSpinNone
	if p.Kind == T && s.lastActionWasRotation {
		filled := func(x, y int) bool { return s.Board.IsFilled(x, y) }
		tspin = DetectTSpin(p.Rotation, p.X, p.Y, filled)
	}

	s.Board.LockPiece(shape, p.X, p.Y, p.Kind)
	s.BoardID++

	cleared := s.Board.ClearFullRows()
	lines := len(cleared)
	if lines > 0 {
		s.BoardID++
	}

	result := ScoreClear(lines, tspin, ScoreContext{ComboIndex: s.combo, B2BActive: s.b2b, Level: s.Level})
	s.Score += result.Delta
	s.combo = result.NewComboIndex
	s.b2b = result.NewB2B
	s.Lines += lines
	s.Level = LevelForLines(s.Lines)

	reportedTSpin := tspin
	if lines == 0 {
		reportedTSpin = TSpinNone
	}
	ev := &Event{
		Locked:       true,
		LinesCleared: lines,
		TSpin:        reportedTSpin,
		Combo:        s.combo,
		BackToBack:   result.NewB2B,
	}
	if tspin != TSpinNone && lines == 0 {
		ev.LineClearScore = 0
	} else {
		ev.LineClearScore = result.LineClearScore
	}
	s.LastEvent = ev

	s.Active = nil
	s.CanHold = true
	s.pendingHardDrop = false
	s.lastActionWasRotation = false

	if lines > 0 {
		s.LineClearMS = LineClearMS
	}
}
