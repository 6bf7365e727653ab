package match

import (
	"errors"
	"fmt"
	"sync"
)

// Scoring error kinds. Every precondition violation surfaces as exactly one
// of these, detected before any mutation; controllers map them to HTTP
// statuses with errors.Is.
var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrInvalidTossWinner      = errors.New("toss winner must be one of the two teams in the match")
	ErrAlreadyTossed          = errors.New("toss already recorded and innings created for this match")
	ErrInningNotFound         = errors.New("inning not found")
	ErrInningMatchMismatch    = errors.New("inning does not belong to this match")
	ErrMatchAlreadyCompleted  = errors.New("match is already completed")
	ErrInningAlreadyCompleted = errors.New("inning is already completed")

	// ErrPersistence wraps storage-layer failures so callers can tell them
	// apart from rule violations.
	ErrPersistence = errors.New("persistence failure")
)

// DeliveryInput carries one validated delivery event.
type DeliveryInput struct {
	InningID   uint
	BatsmanID  uint
	BowlerID   uint
	RunsScored int
	IsWicket   bool
	IsExtra    bool
	ExtraType  *ExtraType
	WicketType *DismissalType
}

// ScoringEngine owns toss resolution and delivery recording. All state
// changes for one match are serialized through a per-match mutex held across
// the whole read-evaluate-write sequence; the repository makes each write a
// single transaction, so concurrent scorers can neither lose counter updates
// nor observe a half-applied delivery.
type ScoringEngine struct {
	repo  MatchRepository
	locks sync.Map // match ID -> *sync.Mutex
}

// NewScoringEngine creates a ScoringEngine over the given repository.
func NewScoringEngine(repo MatchRepository) *ScoringEngine {
	return &ScoringEngine{repo: repo}
}

func (e *ScoringEngine) lockMatch(matchID uint) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(matchID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// ResolveToss records the toss outcome and creates both innings in batting
// order. It is the only creator of Inning rows and may run once per match:
// re-invocation after innings exist fails with ErrAlreadyTossed and changes
// nothing. Match status is not touched here; the first delivery goes Live.
func (e *ScoringEngine) ResolveToss(matchID, tossWinnerID uint, decision TossDecision) (*Match, error) {
	mu := e.lockMatch(matchID)
	defer mu.Unlock()

	m, err := e.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	if tossWinnerID != m.Team1ID && tossWinnerID != m.Team2ID {
		return nil, ErrInvalidTossWinner
	}
	if len(m.Innings) > 0 {
		return nil, ErrAlreadyTossed
	}

	tossLoserID := m.Team2ID
	if tossWinnerID == m.Team2ID {
		tossLoserID = m.Team1ID
	}

	firstBattingID, firstBowlingID := tossWinnerID, tossLoserID
	if decision == DecisionField {
		firstBattingID, firstBowlingID = tossLoserID, tossWinnerID
	}

	m.TossWinnerID = &tossWinnerID
	m.TossDecision = &decision

	innings := []*Inning{
		{MatchID: m.ID, BattingTeamID: firstBattingID, BowlingTeamID: firstBowlingID},
		{MatchID: m.ID, BattingTeamID: firstBowlingID, BowlingTeamID: firstBattingID},
	}

	if err := e.repo.SaveTossResult(m, innings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	updated, err := e.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return updated, nil
}

// RecordDelivery appends one delivery to an inning, applies the scoring
// deltas and evaluates innings/match completion. The delivery row, the
// inning counters and the match status/winner are written as one atomic
// unit; any precondition failure aborts before mutation.
func (e *ScoringEngine) RecordDelivery(matchID uint, input DeliveryInput) (*Delivery, error) {
	mu := e.lockMatch(matchID)
	defer mu.Unlock()

	inning, err := e.repo.GetInningByID(input.InningID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if inning == nil {
		return nil, ErrInningNotFound
	}
	if inning.MatchID != matchID {
		return nil, ErrInningMatchMismatch
	}

	m, err := e.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	if m.Status == StatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	if inning.IsCompleted {
		return nil, ErrInningAlreadyCompleted
	}

	delivery := &Delivery{
		InningID:   input.InningID,
		BatsmanID:  input.BatsmanID,
		BowlerID:   input.BowlerID,
		RunsScored: input.RunsScored,
		IsExtra:    input.IsExtra,
		ExtraType:  input.ExtraType,
		IsWicket:   input.IsWicket,
		WicketType: input.WicketType,
	}

	// Runs: whatever was physically run, plus the extra's own penalty run.
	inning.TotalRuns += input.RunsScored
	if input.IsExtra {
		inning.TotalRuns++
	}

	if input.IsWicket {
		inning.Wickets++
	}

	// Only legal deliveries advance the over count; extras are re-bowled.
	if !input.IsExtra {
		inning.BallsBowled++
		if inning.BallsBowled == 6 {
			inning.OversBowled++
			inning.BallsBowled = 0
		}
	}

	// First ball of the match puts it Live, whichever inning it lands in.
	m.markLive()

	e.evaluateCompletion(m, inning)

	if err := e.repo.ApplyDelivery(delivery, inning, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return delivery, nil
}

// evaluateCompletion decides whether the just-mutated inning has ended and,
// for the second inning, whether the match is decided. A successful chase
// ends the match immediately, mid-over if necessary. The match is never
// completed off the first inning.
func (e *ScoringEngine) evaluateCompletion(m *Match, inning *Inning) {
	inningOver := inning.Wickets >= m.WicketsLimit || inning.OversBowled >= m.OversLimit

	// Innings are ordered by ID; the first-created one is innings #1.
	if len(m.Innings) < 2 {
		if inningOver {
			inning.IsCompleted = true
		}
		return
	}
	first := &m.Innings[0]
	isFirstInning := inning.ID == first.ID

	if !isFirstInning && inning.TotalRuns > first.TotalRuns {
		// Chase complete: target passed, regardless of wickets or overs left.
		inningOver = true
		m.markCompleted(&inning.BattingTeamID)
	}

	if !inningOver {
		return
	}
	inning.IsCompleted = true

	if !isFirstInning && m.WinnerID == nil {
		switch {
		case inning.TotalRuns > first.TotalRuns:
			m.markCompleted(&inning.BattingTeamID)
		case first.TotalRuns > inning.TotalRuns:
			m.markCompleted(&first.BattingTeamID)
		default:
			// Scores level: no winner, but the match is over.
			m.markCompleted(nil)
		}
	}
}

// markLive advances Scheduled to Live; any other status is left alone.
func (m *Match) markLive() {
	if m.Status == StatusScheduled {
		m.Status = StatusLive
	}
}

// markCompleted finalizes the match, recording the winner when there is one.
func (m *Match) markCompleted(winnerID *uint) {
	m.Status = StatusCompleted
	if winnerID != nil {
		m.WinnerID = winnerID
	}
}
