package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/tilegame/game/engine"
)

// ErrConfigUnavailable is returned when a session names a preset that cannot be loaded
var ErrConfigUnavailable = errors.New("config not available")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionStore
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionStore, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given display name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := s.configs.GetDefault()
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				configIDs := make([]string, 0, len(availableConfigs))
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("%w: %q (available: %v): %v", ErrConfigUnavailable, configName, configIDs, err)
			}
			return nil, fmt.Errorf("%w: %q: %v", ErrConfigUnavailable, configName, err)
		}
	}

	// Let the session manager generate the ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// Touching the access time is a write
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	result := &MoveResult{}
	accepted := acceptsMove(sess.Engine, direction)
	changed := sess.Engine.Move(direction)
	state := sess.Engine.GetState()

	result.Success = accepted
	result.Changed = changed
	result.GameState = state
	result.Message = state.Message
	if accepted {
		slide := sess.Engine.LastSlide()
		result.Slide = &slide
		events = append(events, slideEvents(direction, slide, state)...)
	}
	result.Events = events
	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartMaxTile = sess.Engine.Grid().MaxTile()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}
		if _, err := engine.ParseDirection(move); err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d has unknown direction %q", i+1, move)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		changed := sess.Engine.Move(move)
		slide := sess.Engine.LastSlide()
		result.MovesExecuted++
		if changed {
			result.ChangedMoves++
		}

		state := sess.Engine.GetState()
		result.Events = append(result.Events, slideEvents(move, slide, state)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:     i + 1,
			Dir:     move,
			Changed: slide.Changed,
			Spawned: slide.Spawned,
			Merged:  slide.Merged,
			MaxTile: state.MaxTile,
		})
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndMaxTile = endState.MaxTile
	result.GameOver = endState.GameOver
	result.Message = endState.Message
	result.PossibleMoves = endState.PossibleMoves
	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = StopGameOver
	}
	return result, nil
}

// Reset resets a game session to its starting grid
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Reset(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	// Touching the access time is a write
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

// ListConfigs returns available board presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// touch looks up a session and refreshes its access time. Callers must hold
// the write lock. A failed refresh only shortens the session's lifetime, so
// it is logged rather than returned.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.Touch(sessionID); err != nil {
		log.Printf("Warning: failed to refresh access time of session %s: %v", sessionID, err)
	}
	return sess, nil
}

// acceptsMove reports whether the engine will apply a move in direction
func acceptsMove(e *engine.GameEngine, direction string) bool {
	if e.IsGameOver() {
		return false
	}
	_, err := engine.ParseDirection(direction)
	return err == nil
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to starting grid",
		Timestamp: time.Now(),
	}
}

// slideEvents describes an accepted move
func slideEvents(direction string, slide engine.Slide, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := make([]GameEvent, 0, 4)

	if slide.Changed {
		events = append(events, GameEvent{
			Type:      EventMove,
			Message:   fmt.Sprintf("Slid %s in %d passes", direction, slide.Passes),
			Timestamp: now,
		})
	} else {
		events = append(events, GameEvent{
			Type:      EventNoChange,
			Message:   fmt.Sprintf("Nothing moved %s", direction),
			Timestamp: now,
		})
	}
	if slide.Merged > 0 {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("%d merges, max tile %d", slide.Merged, state.MaxTile),
			Timestamp: now,
			Count:     slide.Merged,
		})
	}
	if slide.Spawned > 0 {
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("%d new tiles", slide.Spawned),
			Timestamp: now,
			Count:     slide.Spawned,
		})
	}
	if state.GameOver {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   state.Message,
			Timestamp: now,
		})
	}
	return events
}
