package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/domain/recommend"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	"github.com/riskibarqy/draft-companion/internal/platform/id"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

const (
	DefaultAutoPickDelay  = 300 * time.Millisecond
	DefaultExplainWorkers = 4

	// ExplanationFallback is shown when the explanation provider fails.
	ExplanationFallback = "Could not load explanation."

	minOffCatalogNameLength = 2
)

type catalogProvider interface {
	Catalog(ctx context.Context) (*player.Catalog, error)
}

type draftExplainer interface {
	Explain(ctx context.Context, facts []ExplanationFact) (string, error)
}

type DraftServiceConfig struct {
	AutoPickDelay  time.Duration
	ExplainWorkers int
}

type DraftServiceDeps struct {
	Settings  league.Repository
	Drafts    draft.Repository
	Exports   roster.ExportRepository
	Catalog   catalogProvider
	IDs       id.Generator
	Explainer draftExplainer
	Events    draft.EventPublisher
	Metrics   DraftRecorder
	Logger    *logging.Logger
	Clock     clockwork.Clock
}

// DraftState is the read model of a session returned after every operation.
type DraftState struct {
	DraftID      string          `json:"draft_id"`
	Phase        draft.Phase     `json:"phase"`
	PickIndex    int             `json:"pick_index"`
	PickNumber   int             `json:"pick_number"`
	Round        int             `json:"round"`
	TotalPicks   int             `json:"total_picks"`
	CurrentTeam  string          `json:"current_team,omitempty"`
	IsUserTurn   bool            `json:"is_user_turn"`
	Simulate     bool            `json:"simulate"`
	Generation   uint64          `json:"generation"`
	DraftedCount int             `json:"drafted_count"`
	Explanation  string          `json:"explanation,omitempty"`
	Settings     league.Settings `json:"settings"`
	StartedAt    time.Time       `json:"started_at"`
}

type PickOutcome struct {
	Pick  draft.PickResult `json:"pick"`
	State DraftState       `json:"state"`
}

type RecommendationsView struct {
	PickNumber      int                        `json:"pick_number"`
	IsUserTurn      bool                       `json:"is_user_turn"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Explanation     string                     `json:"explanation,omitempty"`
}

type RosterView struct {
	Entries     []roster.Entry      `json:"entries"`
	Slots       []roster.Indicator  `json:"slots"`
	StillNeeded map[roster.Slot]int `json:"still_needed"`
}

type DraftService struct {
	settingsRepo league.Repository
	draftRepo    draft.Repository
	exportRepo   roster.ExportRepository
	catalog      catalogProvider
	ids          id.Generator
	explainer    draftExplainer
	events       draft.EventPublisher
	metrics      DraftRecorder
	logger       *logging.Logger
	clock        clockwork.Clock
	pool         *ants.Pool

	autoPickDelay time.Duration

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	timers map[string]clockwork.Timer
}

func NewDraftService(deps DraftServiceDeps, cfg DraftServiceConfig) (*DraftService, error) {
	if deps.Settings == nil || deps.Drafts == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("draft service requires settings, drafts and catalog dependencies")
	}
	if cfg.AutoPickDelay <= 0 {
		cfg.AutoPickDelay = DefaultAutoPickDelay
	}
	if cfg.ExplainWorkers <= 0 {
		cfg.ExplainWorkers = DefaultExplainWorkers
	}
	if deps.IDs == nil {
		deps.IDs = id.NewUUIDGenerator()
	}
	if deps.Metrics == nil {
		deps.Metrics = noopDraftRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	pool, err := ants.NewPool(cfg.ExplainWorkers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create explanation worker pool: %w", err)
	}

	return &DraftService{
		settingsRepo:  deps.Settings,
		draftRepo:     deps.Drafts,
		exportRepo:    deps.Exports,
		catalog:       deps.Catalog,
		ids:           deps.IDs,
		explainer:     deps.Explainer,
		events:        deps.Events,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		clock:         deps.Clock,
		pool:          pool,
		autoPickDelay: cfg.AutoPickDelay,
		locks:         make(map[string]*sync.Mutex),
		timers:        make(map[string]clockwork.Timer),
	}, nil
}

// Close stops pending auto-picks and waits briefly for explanation workers.
func (s *DraftService) Close() {
	s.mu.Lock()
	for draftID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, draftID)
	}
	s.mu.Unlock()

	_ = s.pool.ReleaseTimeout(5 * time.Second)
}

// Create opens a new session from the stored settings and catalog and starts it.
func (s *DraftService) Create(ctx context.Context, simulate bool) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Create")
	defer span.End()

	settings, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return DraftState{}, err
	}

	draftID, err := s.ids.NewID()
	if err != nil {
		return DraftState{}, fmt.Errorf("generate draft id: %w", err)
	}
	s.pruneExpired(ctx)

	lock := s.sessionLock(draftID)
	lock.Lock()
	defer lock.Unlock()

	session := draft.NewSession(draftID, settings, catalog)
	session.Simulate = simulate
	session.Start(settings, catalog, s.clock.Now().UTC())
	if err := s.draftRepo.Save(ctx, session); err != nil {
		return DraftState{}, fmt.Errorf("save draft session: %w", err)
	}

	s.metrics.RecordDraftStarted()
	s.logger.InfoContext(ctx, "draft created",
		"draft_id", draftID,
		"num_teams", settings.NumTeams,
		"draft_position", settings.DraftPosition,
		"players", catalog.Len(),
		"simulate", simulate,
	)
	s.publish(ctx, session, draft.EventStarted, s.snapshot(session))
	s.afterTurn(ctx, session)

	return s.snapshot(session), nil
}

// Start restarts an existing session, reloading settings and catalog. Any
// pending auto-pick or explanation from the previous run is discarded.
func (s *DraftService) Start(ctx context.Context, draftID string, simulate *bool) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Start", draftAttr(draftID))
	defer span.End()

	settings, catalog, err := s.loadInputs(ctx)
	if err != nil {
		return DraftState{}, err
	}

	var state DraftState
	err = s.withSession(ctx, draftID, func(session *draft.Session) error {
		s.stopTimer(session.ID)
		if simulate != nil {
			session.Simulate = *simulate
		}
		session.Start(settings, catalog, s.clock.Now().UTC())
		if err := s.draftRepo.Save(ctx, session); err != nil {
			return fmt.Errorf("save draft session: %w", err)
		}

		s.metrics.RecordDraftStarted()
		s.logger.InfoContext(ctx, "draft restarted", "draft_id", session.ID, "generation", session.Generation)
		s.publish(ctx, session, draft.EventStarted, s.snapshot(session))
		s.afterTurn(ctx, session)
		state = s.snapshot(session)
		return nil
	})
	return state, err
}

func (s *DraftService) State(ctx context.Context, draftID string) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.State", draftAttr(draftID))
	defer span.End()

	var state DraftState
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		state = s.snapshot(session)
		return nil
	})
	return state, err
}

// RecordPick records a pick for whoever is on the clock.
func (s *DraftService) RecordPick(ctx context.Context, draftID, playerName string) (PickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RecordPick", draftAttr(draftID))
	defer span.End()

	var outcome PickOutcome
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		var err error
		if session.InProgress() && session.Sequencer().IsUserTurn() {
			outcome, err = s.recordUserPick(ctx, session, playerName)
		} else {
			outcome, err = s.recordOtherTeamPick(ctx, session, playerName)
		}
		return err
	})
	return outcome, err
}

// RecordUserPick records the user's selection. It fails when another team is
// on the clock.
func (s *DraftService) RecordUserPick(ctx context.Context, draftID, playerName string) (PickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RecordUserPick", draftAttr(draftID))
	defer span.End()

	var outcome PickOutcome
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		if session.InProgress() && !session.Sequencer().IsUserTurn() {
			return fmt.Errorf("%w: %w: it is not your turn", ErrConflict, draft.ErrInvalidPickRequest)
		}
		var err error
		outcome, err = s.recordUserPick(ctx, session, playerName)
		return err
	})
	return outcome, err
}

// RecordOtherTeamPick records a manual entry for the team on the clock.
// Names matching an available catalog player case-insensitively are stored
// under the catalog spelling; anything else of at least two characters is
// kept as an opaque label.
func (s *DraftService) RecordOtherTeamPick(ctx context.Context, draftID, playerName string) (PickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.RecordOtherTeamPick", draftAttr(draftID))
	defer span.End()

	var outcome PickOutcome
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		if session.InProgress() && session.Sequencer().IsUserTurn() {
			return fmt.Errorf("%w: %w: it is your turn", ErrConflict, draft.ErrInvalidPickRequest)
		}
		var err error
		outcome, err = s.recordOtherTeamPick(ctx, session, playerName)
		return err
	})
	return outcome, err
}

func (s *DraftService) recordUserPick(ctx context.Context, session *draft.Session, playerName string) (PickOutcome, error) {
	name, err := s.resolvePickName(session, playerName)
	if err != nil {
		return PickOutcome{}, err
	}
	return s.applyPick(ctx, session, name, true, PickKindUser)
}

func (s *DraftService) recordOtherTeamPick(ctx context.Context, session *draft.Session, playerName string) (PickOutcome, error) {
	name, err := s.resolvePickName(session, playerName)
	if err != nil {
		return PickOutcome{}, err
	}
	if _, ok := session.Catalog.Lookup(name); !ok && utf8.RuneCountInString(name) < minOffCatalogNameLength {
		return PickOutcome{}, fmt.Errorf("%w: player name must be at least %d characters", ErrInvalidInput, minOffCatalogNameLength)
	}
	return s.applyPick(ctx, session, name, false, PickKindOtherTeam)
}

// resolvePickName trims the entry and rejects names that were already
// drafted. An exact catalog name always wins; otherwise the first available
// player matching case-insensitively supplies the catalog spelling. Anything
// else is an off-catalog label, compared case-insensitively.
func (s *DraftService) resolvePickName(session *draft.Session, playerName string) (string, error) {
	name := player.NormalizeName(playerName)
	if name == "" {
		return "", fmt.Errorf("%w: player_name is required", ErrInvalidInput)
	}
	if !session.InProgress() {
		return "", fmt.Errorf("%w: %w: draft is %s", ErrConflict, draft.ErrInvalidPickRequest, session.Phase())
	}

	drafted := session.Drafted()
	if p, ok := session.Catalog.Lookup(name); ok {
		if drafted.Contains(p.Name) {
			return "", alreadyDrafted(p.Name)
		}
		return p.Name, nil
	}
	available := func(p player.Player) bool { return !drafted.Contains(p.Name) }
	if p, ok := session.Catalog.FirstFold(name, available); ok {
		return p.Name, nil
	}
	if drafted.ContainsFold(name) {
		return "", alreadyDrafted(name)
	}
	return name, nil
}

func alreadyDrafted(name string) error {
	return fmt.Errorf("%w: %w: %s was already drafted", ErrConflict, draft.ErrInvalidPickRequest, name)
}

func (s *DraftService) applyPick(ctx context.Context, session *draft.Session, name string, isUser bool, kind string) (PickOutcome, error) {
	result, err := session.RecordPick(name, isUser, s.clock.Now().UTC())
	if err != nil {
		return PickOutcome{}, mapDraftError(err)
	}
	if err := s.draftRepo.Save(ctx, session); err != nil {
		return PickOutcome{}, fmt.Errorf("save draft session: %w", err)
	}

	s.metrics.RecordPick(kind, result.Matched)
	if !result.Matched {
		s.logger.WarnContext(ctx, "pick recorded for unmatched player name",
			"draft_id", session.ID,
			"pick", result.History.PickNumber,
			"player_name", name,
			"error", draft.ErrUnmatchedPlayerName,
		)
	} else {
		s.logger.DebugContext(ctx, "pick recorded",
			"draft_id", session.ID,
			"pick", result.History.PickNumber,
			"team", result.History.TeamLabel,
			"player_name", name,
			"kind", kind,
		)
	}
	s.publish(ctx, session, draft.EventPickRecorded, result)

	if result.Complete {
		s.complete(ctx, session)
	} else {
		s.afterTurn(ctx, session)
	}

	return PickOutcome{Pick: result, State: s.snapshot(session)}, nil
}

func (s *DraftService) complete(ctx context.Context, session *draft.Session) {
	s.stopTimer(session.ID)
	s.metrics.RecordDraftCompleted()

	if s.exportRepo != nil {
		export := roster.Export{
			DraftID:    session.ID,
			LeagueName: session.Settings.LeagueName,
			Entries:    session.Roster(),
			ExportedAt: s.clock.Now().UTC(),
		}
		if err := s.exportRepo.Save(ctx, export); err != nil {
			s.logger.ErrorContext(ctx, "export completed roster failed", "draft_id", session.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "draft complete", "draft_id", session.ID, "roster_size", len(session.Roster()))
	s.publish(ctx, session, draft.EventComplete, session.Roster())
}

// afterTurn announces the new turn and either requests an explanation for
// the user or schedules an auto-pick. Callers hold the session lock.
func (s *DraftService) afterTurn(ctx context.Context, session *draft.Session) {
	if !session.InProgress() {
		return
	}
	s.publish(ctx, session, draft.EventTurn, s.snapshot(session))

	if session.Sequencer().IsUserTurn() {
		s.stopTimer(session.ID)
		session.Explanation = ""
		s.requestExplanation(ctx, session)
		return
	}
	if session.Simulate {
		s.scheduleAutoPick(session)
	}
}

func (s *DraftService) scheduleAutoPick(session *draft.Session) {
	draftID := session.ID
	generation := session.Generation
	pickIndex := session.Sequencer().PickIndex()

	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[draftID]; ok {
		timer.Stop()
	}
	s.timers[draftID] = s.clock.AfterFunc(s.autoPickDelay, func() {
		s.autoPick(draftID, generation, pickIndex)
	})
}

func (s *DraftService) stopTimer(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[draftID]; ok {
		timer.Stop()
		delete(s.timers, draftID)
	}
}

// autoPick fires from the timer. It applies only if the session is still on
// the same run and pick, simulate is on and the turn belongs to another team.
func (s *DraftService) autoPick(draftID string, generation uint64, pickIndex int) {
	ctx := context.Background()
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		if session.Generation != generation ||
			!session.InProgress() ||
			session.Sequencer().PickIndex() != pickIndex ||
			session.Sequencer().IsUserTurn() ||
			!session.Simulate {
			s.logger.DebugContext(ctx, "stale auto-pick ignored", "draft_id", draftID, "pick_index", pickIndex)
			return nil
		}

		recs := session.Recommendations(recommend.AutoPickCount)
		if len(recs) == 0 {
			s.logger.WarnContext(ctx, "auto-pick has no available players", "draft_id", draftID, "pick_index", pickIndex)
			return nil
		}

		_, err := s.applyPick(ctx, session, recs[0].Player.Name, false, PickKindAuto)
		return err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.ErrorContext(ctx, "auto-pick failed", "draft_id", draftID, "error", err)
	}
}

// requestExplanation submits the top recommendations to the worker pool. The
// result is attached only if the session has not moved on.
func (s *DraftService) requestExplanation(ctx context.Context, session *draft.Session) {
	if s.explainer == nil {
		return
	}
	recs := session.Recommendations(recommend.UserCount)
	if len(recs) == 0 {
		return
	}

	facts := recommend.BuildFacts(recs, session.StillNeeded())
	wire := make([]ExplanationFact, 0, len(facts))
	for _, f := range facts {
		wire = append(wire, ExplanationFactFrom(f))
	}

	draftID := session.ID
	generation := session.Generation
	pickIndex := session.Sequencer().PickIndex()
	bgCtx := context.WithoutCancel(ctx)

	err := s.pool.Submit(func() {
		startedAt := s.clock.Now()
		text, err := s.explainer.Explain(bgCtx, wire)
		outcome := ExplanationOutcomeOK
		if err != nil {
			s.logger.WarnContext(bgCtx, "explanation unavailable", "draft_id", draftID, "error", err)
			text = ExplanationFallback
			outcome = ExplanationOutcomeFallback
		}

		_ = s.withSession(bgCtx, draftID, func(current *draft.Session) error {
			if current.Generation != generation || current.Sequencer().PickIndex() != pickIndex || !current.InProgress() {
				outcome = ExplanationOutcomeStale
				return nil
			}
			current.Explanation = text
			s.publish(bgCtx, current, draft.EventExplanation, map[string]string{"explanation": text})
			return nil
		})
		s.metrics.RecordExplanation(outcome, s.clock.Since(startedAt))
	})
	if err != nil {
		s.logger.WarnContext(ctx, "explanation request dropped", "draft_id", draftID, "error", err)
		session.Explanation = ExplanationFallback
		s.metrics.RecordExplanation(ExplanationOutcomeDropped, 0)
	}
}

// Recommendations ranks the best n available players for the user's roster.
// n <= 0 uses the default of three.
func (s *DraftService) Recommendations(ctx context.Context, draftID string, n int) (RecommendationsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Recommendations", draftAttr(draftID))
	defer span.End()

	if n <= 0 {
		n = recommend.UserCount
	}

	var view RecommendationsView
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		seq := session.Sequencer()
		view = RecommendationsView{
			PickNumber:      seq.PickIndex() + 1,
			IsUserTurn:      seq.IsUserTurn(),
			Recommendations: session.Recommendations(n),
			Explanation:     session.Explanation,
		}
		return nil
	})
	return view, err
}

// SetSimulate toggles auto-picking for other teams.
func (s *DraftService) SetSimulate(ctx context.Context, draftID string, on bool) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SetSimulate", draftAttr(draftID))
	defer span.End()

	var state DraftState
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		session.Simulate = on
		if err := s.draftRepo.Save(ctx, session); err != nil {
			return fmt.Errorf("save draft session: %w", err)
		}

		if !on {
			s.stopTimer(session.ID)
		} else if session.InProgress() && !session.Sequencer().IsUserTurn() {
			s.scheduleAutoPick(session)
		}
		s.publish(ctx, session, draft.EventSimulate, map[string]bool{"simulate": on})
		state = s.snapshot(session)
		return nil
	})
	return state, err
}

func (s *DraftService) Roster(ctx context.Context, draftID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Roster", draftAttr(draftID))
	defer span.End()

	var view RosterView
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		view = RosterView{
			Entries:     session.Roster(),
			Slots:       session.SlotIndicators(),
			StillNeeded: session.StillNeeded(),
		}
		return nil
	})
	return view, err
}

func (s *DraftService) History(ctx context.Context, draftID string) ([]draft.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.History", draftAttr(draftID))
	defer span.End()

	var history []draft.HistoryEntry
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		history = session.History()
		return nil
	})
	return history, err
}

// Drafted returns a snapshot of the names taken so far in a draft.
func (s *DraftService) Drafted(ctx context.Context, draftID string) (*draft.Availability, error) {
	var drafted *draft.Availability
	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		drafted = session.Drafted().Clone()
		return nil
	})
	return drafted, err
}

// LatestRoster returns the most recently completed roster.
func (s *DraftService) LatestRoster(ctx context.Context) (roster.Export, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.LatestRoster")
	defer span.End()

	if s.exportRepo == nil {
		return roster.Export{}, fmt.Errorf("%w: no completed roster", ErrNotFound)
	}
	export, exists, err := s.exportRepo.GetLatest(ctx)
	if err != nil {
		return roster.Export{}, fmt.Errorf("get latest roster export: %w", err)
	}
	if !exists {
		return roster.Export{}, fmt.Errorf("%w: no completed roster", ErrNotFound)
	}
	return export, nil
}

func (s *DraftService) Delete(ctx context.Context, draftID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Delete", draftAttr(draftID))
	defer span.End()

	err := s.withSession(ctx, draftID, func(session *draft.Session) error {
		s.stopTimer(session.ID)
		session.Generation++
		if err := s.draftRepo.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("delete draft session: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.forget(strings.TrimSpace(draftID))

	s.logger.InfoContext(ctx, "draft deleted", "draft_id", draftID)
	return nil
}

func (s *DraftService) loadInputs(ctx context.Context) (league.Settings, *player.Catalog, error) {
	settings, exists, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return league.Settings{}, nil, fmt.Errorf("get league settings: %w", err)
	}
	if !exists {
		return league.Settings{}, nil, fmt.Errorf("%w: %w: save league settings first", ErrConflict, draft.ErrConfigurationMissing)
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return league.Settings{}, nil, err
	}

	return settings.Normalize(), catalog, nil
}

func (s *DraftService) sessionLock(draftID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[draftID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[draftID] = lock
	}
	return lock
}

// withSession runs fn under the per-session lock.
func (s *DraftService) withSession(ctx context.Context, draftID string, fn func(*draft.Session) error) error {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}

	if _, err := s.lookupSession(ctx, draftID); err != nil {
		return err
	}

	lock := s.sessionLock(draftID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.lookupSession(ctx, draftID)
	if err != nil {
		return err
	}
	return fn(session)
}

// lookupSession loads a session. A missing session has its lock and pending
// auto-pick dropped so unknown or expired ids leave nothing behind.
func (s *DraftService) lookupSession(ctx context.Context, draftID string) (*draft.Session, error) {
	session, exists, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft session: %w", err)
	}
	if !exists {
		s.forget(draftID)
		return nil, fmt.Errorf("%w: draft=%s", ErrNotFound, draftID)
	}
	return session, nil
}

func (s *DraftService) forget(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[draftID]; ok {
		timer.Stop()
		delete(s.timers, draftID)
	}
	delete(s.locks, draftID)
}

// pruneExpired evicts idle sessions when the repository supports expiry.
func (s *DraftService) pruneExpired(ctx context.Context) {
	pruner, ok := s.draftRepo.(draft.Pruner)
	if !ok {
		return
	}
	expired := pruner.PruneExpired(ctx)
	for _, draftID := range expired {
		s.forget(draftID)
	}
	if len(expired) > 0 {
		s.logger.InfoContext(ctx, "idle draft sessions evicted", "count", len(expired))
	}
}

func (s *DraftService) snapshot(session *draft.Session) DraftState {
	seq := session.Sequencer()
	state := DraftState{
		DraftID:      session.ID,
		Phase:        seq.Phase(),
		PickIndex:    seq.PickIndex(),
		TotalPicks:   seq.TotalPicks(),
		Simulate:     session.Simulate,
		Generation:   session.Generation,
		DraftedCount: session.Drafted().Len(),
		Explanation:  session.Explanation,
		Settings:     session.Settings,
		StartedAt:    session.StartedAt,
	}
	if session.InProgress() {
		state.PickNumber = seq.PickIndex() + 1
		state.Round = seq.Round(seq.PickIndex())
		state.CurrentTeam = seq.TeamLabel(seq.PickIndex())
		state.IsUserTurn = seq.IsUserTurn()
	}
	return state
}

func (s *DraftService) publish(ctx context.Context, session *draft.Session, eventType draft.EventType, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, draft.Event{
		Type:       eventType,
		DraftID:    session.ID,
		Generation: session.Generation,
		PickIndex:  session.Sequencer().PickIndex(),
		OccurredAt: s.clock.Now().UTC(),
		Payload:    payload,
	})
}

func mapDraftError(err error) error {
	if errors.Is(err, draft.ErrInvalidPickRequest) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
