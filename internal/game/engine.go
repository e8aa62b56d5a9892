package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novafree/nova-server-go/internal/catalog"
	"github.com/novafree/nova-server-go/internal/config"
)

// Notification is a real-time event pushed to the registered handler after a
// game's state changes. The gateway fans these out to subscribed clients.
type Notification struct {
	Type   string
	GameID string
	Round  int
	Phase  string
}

// NotificationHandler receives engine notifications. It is called in its own
// goroutine and must not block on engine entry points it does not own.
type NotificationHandler func(Notification)

// Outcome reports what one submitted action did. Exactly one of Applied or
// Rejection describes the result; Encounters lists battles resolved by a
// phase cascade this action triggered.
type Outcome struct {
	Applied   bool
	Rejection *Rejection

	Round      int
	Phase      Phase
	Encounters []*Encounter
}

type gameInstance struct {
	mu    sync.Mutex
	state *State
	seed  int64
}

// Engine owns every game's authoritative state. All mutation funnels
// through SubmitAction and the lifecycle entry points; each game is guarded
// by its own lock so games progress independently.
type Engine struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
	rules   config.RulesConfig
	dice    Dice
	retreat RetreatPolicy

	mu      sync.RWMutex
	games   map[string]*gameInstance
	handler NotificationHandler
}

// Option configures an Engine.
type Option func(*Engine)

// WithDice replaces the default seeded die-roll source.
func WithDice(d Dice) Option {
	return func(e *Engine) { e.dice = d }
}

// WithRetreatPolicy replaces the default never-retreat policy.
func WithRetreatPolicy(rp RetreatPolicy) Option {
	return func(e *Engine) { e.retreat = rp }
}

// New creates an Engine.
func New(logger *zap.Logger, cat *catalog.Catalog, rules config.RulesConfig, opts ...Option) *Engine {
	e := &Engine{
		logger:  logger,
		catalog: cat,
		rules:   rules,
		dice:    NewDice(time.Now().UnixNano()),
		retreat: neverRetreat{},
		games:   make(map[string]*gameInstance),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetNotificationHandler registers the handler for game notifications.
func (e *Engine) SetNotificationHandler(h NotificationHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = h
}

func (e *Engine) notify(n Notification) {
	e.mu.RLock()
	h := e.handler
	e.mu.RUnlock()
	if h != nil {
		go h(n)
	}
}

// CreateGame opens a new game lobby. The seed drives map generation and the
// discovery deck, making the setup reproducible.
func (e *Engine) CreateGame(gameID string, seed int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	e.games[gameID] = &gameInstance{state: newState(gameID), seed: seed}
	e.logger.Info("game created",
		zap.String("game_id", gameID),
		zap.Int64("seed", seed),
	)
	return nil
}

func (e *Engine) instance(gameID string) (*gameInstance, error) {
	e.mu.RLock()
	inst, exists := e.games[gameID]
	e.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	return inst, nil
}

// AddPlayer seats a player in a lobby and returns their ID.
func (e *Engine) AddPlayer(gameID, name, species string) (PlayerID, error) {
	inst, err := e.instance(gameID)
	if err != nil {
		return 0, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.state.Phase != PhaseLobby {
		return 0, fmt.Errorf("game %s already started", gameID)
	}
	if len(inst.state.TurnOrder) >= 6 {
		return 0, fmt.Errorf("game %s is full", gameID)
	}
	id, err := e.addPlayer(inst.state, name, species)
	if err != nil {
		return 0, err
	}
	e.logger.Info("player joined",
		zap.String("game_id", gameID),
		zap.Int("player_id", int(id)),
		zap.String("species", species),
	)
	return id, nil
}

// StartGame seeds the board and opens round one.
func (e *Engine) StartGame(gameID string) error {
	inst, err := e.instance(gameID)
	if err != nil {
		return err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if err := e.startGame(inst.state, inst.seed); err != nil {
		return err
	}
	e.logger.Info("game started",
		zap.String("game_id", gameID),
		zap.Int("players", len(inst.state.TurnOrder)),
	)
	e.notify(Notification{Type: "GAME_STARTED", GameID: gameID, Round: 1, Phase: inst.state.Phase.String()})
	return nil
}

// SubmitAction validates and applies one player action. A Rejection leaves
// the state untouched and is reported in the Outcome, not as an error; an
// error return means the game could not be mutated at all.
//
// Application is atomic: effects apply to a clone of the state, which is
// swapped in only when every effect lands. When the action closes the
// round, the combat, upkeep, and cleanup phases cascade on the same clone
// before the swap, so observers never see a half-finished round.
func (e *Engine) SubmitAction(gameID string, a Action) (Outcome, error) {
	inst, err := e.instance(gameID)
	if err != nil {
		return Outcome{}, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	s := inst.state
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if s.Phase == PhaseFinished || s.Phase == PhaseLobby {
		return e.rejected(s, &a, reject(ReasonGameNotActive, "phase is %s", s.Phase)), nil
	}
	if s.consumed[a.ID] {
		return e.rejected(s, &a, reject(ReasonDuplicateAction, "action %s already applied", a.ID)), nil
	}

	effects, rej := e.validate(s, &a)
	if rej != nil {
		return e.rejected(s, &a, rej), nil
	}

	next := s.Clone()
	if err := e.applyEffects(next, effects); err != nil {
		e.logger.Error("action aborted by consistency fault",
			zap.String("game_id", gameID),
			zap.String("action_id", a.ID),
			zap.String("action", a.String()),
			zap.Error(err),
		)
		return Outcome{}, err
	}
	next.consumed[a.ID] = true
	next.History = append(next.History, ActionRecord{
		ActionID: a.ID,
		Player:   a.Player,
		Type:     a.Type,
		Round:    next.Round,
		At:       time.Now().UTC(),
	})

	encountersBefore := len(next.Encounters)
	next.advanceCursor()
	if next.allPassed() {
		e.closeRound(next)
	}
	inst.state = next

	e.logger.Debug("action applied",
		zap.String("game_id", gameID),
		zap.String("action", a.String()),
		zap.Int("round", next.Round),
		zap.String("phase", next.Phase.String()),
	)
	e.notify(Notification{Type: "STATE_CHANGED", GameID: gameID, Round: next.Round, Phase: next.Phase.String()})
	return Outcome{
		Applied:    true,
		Round:      next.Round,
		Phase:      next.Phase,
		Encounters: next.Encounters[encountersBefore:],
	}, nil
}

func (e *Engine) rejected(s *State, a *Action, rej *Rejection) Outcome {
	e.logger.Debug("action rejected",
		zap.String("game_id", s.GameID),
		zap.String("action", a.String()),
		zap.String("reason", string(rej.Reason)),
		zap.String("detail", rej.Detail),
	)
	return Outcome{Rejection: rej, Round: s.Round, Phase: s.Phase}
}

// closeRound runs the automatic tail of a round once every player has
// passed: combat in every contested hex, upkeep, then cleanup into the next
// strategy round or the final tally.
func (e *Engine) closeRound(s *State) {
	s.Phase = PhaseCombat
	e.resolveCombatPhase(s)

	s.Phase = PhaseUpkeep
	e.runUpkeep(s)

	s.Phase = PhaseCleanup
	if s.endTriggered(e.rules.MaxGameRounds) {
		e.finishGame(s)
		e.logger.Info("game finished",
			zap.String("game_id", s.GameID),
			zap.Int("winner", int(s.Winner)),
			zap.Int("rounds", s.Round),
		)
		return
	}
	s.Round++
	s.Phase = PhaseStrategy
	s.resetRound()
}

// Snapshot returns a read-only view of a game.
func (e *Engine) Snapshot(gameID string) (*GameView, error) {
	inst, err := e.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return buildView(inst.state), nil
}

// Restore installs a previously serialized game, replacing any in-memory
// instance with the same ID.
func (e *Engine) Restore(v *GameView) error {
	s, err := stateFromView(v)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.games[s.GameID] = &gameInstance{state: s}
	e.logger.Info("game restored",
		zap.String("game_id", s.GameID),
		zap.Int("round", s.Round),
		zap.String("phase", s.Phase.String()),
	)
	return nil
}

// GameIDs lists the games currently held in memory.
func (e *Engine) GameIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.games))
	for id := range e.games {
		out = append(out, id)
	}
	return out
}
