// Package service provides the core game service that implements the
// dependencies required by the HTTP API. All state mutations run under one
// mutex and write through to the save store before returning.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/foil/internal/adapters/events"
	"github.com/okian/foil/internal/adapters/repository"
	"github.com/okian/foil/internal/domain/badge"
	"github.com/okian/foil/internal/domain/catalog"
	"github.com/okian/foil/internal/domain/progression"
	"github.com/okian/foil/internal/domain/rng"
	"github.com/okian/foil/internal/domain/upgrade"
	"github.com/okian/foil/pkg/logger"
	"github.com/okian/foil/pkg/metrics"
)

// Gameplay tuning constants.
const (
	defaultSaveKey   = "foil-save-v1"
	streakWindow     = 3 * time.Minute
	pityThreshold    = 6
	backstopFloorPct = 0.3
	dailyClaimTarget = 10
	claimsPerToken   = 15
)

// Service implements the API dependencies for the ticket game.
type Service struct {
	mu sync.Mutex

	// Core components
	state    *State
	cat      *catalog.Catalog
	upgrades []upgrade.Def
	ladder   *progression.Ladder
	store    repository.SaveStore
	bus      *events.Bus

	// Configuration
	contentDir string
	saveKey    string
	rngSeed    string
	now        func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the save store backend.
func WithStore(store repository.SaveStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBus sets the event bus.
func WithBus(bus *events.Bus) Option {
	return func(s *Service) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithCatalog sets a preloaded tier catalog, bypassing the content dir.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.cat = cat
		}
	}
}

// WithUpgrades sets a preloaded upgrade tree.
func WithUpgrades(defs []upgrade.Def) Option {
	return func(s *Service) {
		if defs != nil {
			s.upgrades = defs
		}
	}
}

// WithLadder sets a preloaded vendor ladder.
func WithLadder(l *progression.Ladder) Option {
	return func(s *Service) {
		if l != nil {
			s.ladder = l
		}
	}
}

// WithContentDir sets the directory content files load from.
func WithContentDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.contentDir = dir
		}
	}
}

// WithSaveKey sets the save-store key this instance plays under.
func WithSaveKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.saveKey = key
		}
	}
}

// WithRNGSeed seeds the shared non-deterministic stream. Ticket generation
// is unaffected; it always derives seeds from tier and serial.
func WithRNGSeed(seed string) Option {
	return func(s *Service) {
		if seed != "" {
			s.rngSeed = seed
		}
	}
}

// WithClock injects the time source. Tests use this to drive streak decay
// and daily resets.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		saveKey:    defaultSaveKey,
		contentDir: "content",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads content and the save file, initializing defaults where
// nothing was injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting game service...")

	if s.cat == nil {
		cat, err := catalog.Load(s.contentDir)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.cat = cat
	}
	if s.upgrades == nil {
		defs, err := upgrade.Load(s.contentDir)
		if err != nil {
			return fmt.Errorf("load upgrades: %w", err)
		}
		s.upgrades = defs
	}
	if s.ladder == nil {
		ladder, err := progression.Load(s.contentDir)
		if err != nil {
			return fmt.Errorf("load progression: %w", err)
		}
		s.ladder = ladder
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.bus == nil {
		s.bus = events.NewBus()
	}
	if s.rngSeed != "" {
		rng.SetSeed(s.rngSeed)
	}

	if err := s.loadStateLocked(ctx); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.Int("tiers", len(s.cat.Tiers())),
		logger.Int("upgrades", len(s.upgrades)),
		logger.String("saveKey", s.saveKey),
	)
	return nil
}

// Stop flushes the save and closes the bus.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping game service...")
	s.persistLocked(ctx)
	if s.bus != nil {
		_ = s.bus.Close()
	}
	s.started = false
	s.logger.Info(ctx, "game service stopped")
}

// Events exposes the advisory notification stream.
func (s *Service) Events() <-chan events.Event {
	return s.bus.Events()
}

// loadStateLocked pulls the save from the store, falling back to a fresh
// save when none exists.
func (s *Service) loadStateLocked(ctx context.Context) error {
	data, err := s.store.Load(ctx, s.saveKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.state = newState()
		s.logger.Info(ctx, "no save found, starting fresh")
	case err != nil:
		return fmt.Errorf("load save: %w", err)
	default:
		var st State
		if uerr := json.Unmarshal(data, &st); uerr != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSave, uerr)
		}
		st.ensureMaps()
		s.state = &st
		s.logger.Info(ctx, "save loaded",
			logger.Int("money", st.Money),
			logger.Int("inventory", len(st.Inventory)),
		)
	}
	// Vendor level is derived state; recompute in case the ladder changed.
	s.state.VendorLevel = s.ladder.LevelForXP(s.state.VendorXP)
	s.refreshGaugesLocked()
	return nil
}

// persistLocked writes the save through the store. Persistence failures are
// logged and counted but never fail the gameplay mutation that triggered
// them; the in-memory state stays authoritative.
func (s *Service) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		metrics.RecordSaveError()
		s.logger.Error(ctx, "marshal save failed", logger.Error(err))
		return
	}
	start := time.Now()
	if err := s.store.Save(ctx, s.saveKey, data); err != nil {
		metrics.RecordSaveError()
		s.logger.Warn(ctx, "save write failed", logger.Error(err))
		return
	}
	metrics.RecordSaveLatency(float64(time.Since(start).Milliseconds()))
}

func (s *Service) refreshGaugesLocked() {
	metrics.UpdateBalances(s.state.Money, s.state.Tokens)
	metrics.UpdateVendorLevel(s.state.VendorLevel)
	metrics.UpdateBadgeCount(len(s.state.Badges))
}

// effectsLocked aggregates the owned upgrade levels.
func (s *Service) effectsLocked() upgrade.Effects {
	return upgrade.Aggregate(s.upgrades, s.state.Upgrades)
}

// scanBadgesLocked diffs currently-earned badges against the awarded set,
// recording and announcing anything new.
func (s *Service) scanBadgesLocked(ctx context.Context) {
	snap := badge.Snapshot{
		TilesScratched: s.state.Stats.TilesScratched,
		Claims:         s.state.Stats.Claims,
		BestStreak:     s.state.Stats.BestStreak,
		BiggestWin:     s.state.Stats.BiggestWin,
		TierOwned:      s.state.TierOwned,
	}
	nowMs := s.now().UnixMilli()
	for _, id := range badge.Earned(snap, s.cat) {
		if _, have := s.state.Badges[id]; have {
			continue
		}
		s.state.Badges[id] = nowMs
		s.bus.Publish(events.Event{Kind: events.KindBadgeEarned, At: nowMs, BadgeID: id})
		s.logger.Info(ctx, "badge earned", logger.String("badge", id))
	}
	metrics.UpdateBadgeCount(len(s.state.Badges))
}
