package game

// Saved is the persisted form of a session for one grid size.
type Saved struct {
	Cells      [][]int
	Score      int
	BestScore  int
	AlreadyWon bool
	Maxed      bool // Session ended at the value ceiling
	SessionID  string
}

// IsFresh reports whether the saved grid holds no tiles, meaning there is
// no game to restore.
func (s Saved) IsFresh() bool {
	for _, row := range s.Cells {
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Persistence stores sessions in one namespace per grid size so different
// sizes never overwrite each other.
type Persistence interface {
	// Load returns the saved session for size, or false if none exists.
	Load(size int) (Saved, bool, error)

	// Save replaces the saved session for size.
	Save(size int, s Saved) error
}

// StepListener receives the result of every accepted move, synchronously,
// after the controller state has been updated. No-op moves are not reported.
type StepListener interface {
	OnStep(stepScore, stepMax int)
}

// StepFunc adapts a function to StepListener.
type StepFunc func(stepScore, stepMax int)

// OnStep calls f.
func (f StepFunc) OnStep(stepScore, stepMax int) {
	f(stepScore, stepMax)
}
