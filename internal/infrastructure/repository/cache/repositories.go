package cache

import (
	"context"
	"maps"

	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/roster"
	basecache "github.com/riskibarqy/draft-companion/internal/platform/cache"
)

const (
	leagueSettingsKey = "league:settings"
	rosterLatestKey   = "roster:latest"
)

type cachedSettings struct {
	value  league.Settings
	exists bool
}

// LeagueRepository reads settings through a cache and invalidates it on writes.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store[cachedSettings]
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store[cachedSettings]) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func NewLeagueSettingsStore() *basecache.Store[cachedSettings] {
	return basecache.NewStore[cachedSettings](0)
}

func (r *LeagueRepository) Get(ctx context.Context) (league.Settings, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, leagueSettingsKey, func(ctx context.Context) (cachedSettings, error) {
		settings, exists, err := r.next.Get(ctx)
		if err != nil {
			return cachedSettings{}, err
		}
		return cachedSettings{value: settings, exists: exists}, nil
	})
	if err != nil {
		return league.Settings{}, false, err
	}

	settings := cached.value
	settings.Roster = maps.Clone(settings.Roster)
	return settings, cached.exists, nil
}

func (r *LeagueRepository) Save(ctx context.Context, settings league.Settings) error {
	defer r.cache.Delete(ctx, leagueSettingsKey)
	return r.next.Save(ctx, settings)
}

func (r *LeagueRepository) Delete(ctx context.Context) error {
	defer r.cache.Delete(ctx, leagueSettingsKey)
	return r.next.Delete(ctx)
}

type cachedExport struct {
	value  roster.Export
	exists bool
}

type RosterExportRepository struct {
	next  roster.ExportRepository
	cache *basecache.Store[cachedExport]
}

func NewRosterExportRepository(next roster.ExportRepository, cache *basecache.Store[cachedExport]) *RosterExportRepository {
	return &RosterExportRepository{next: next, cache: cache}
}

func NewRosterExportStore() *basecache.Store[cachedExport] {
	return basecache.NewStore[cachedExport](0)
}

func (r *RosterExportRepository) Save(ctx context.Context, export roster.Export) error {
	defer r.cache.Delete(ctx, rosterLatestKey)
	return r.next.Save(ctx, export)
}

func (r *RosterExportRepository) GetLatest(ctx context.Context) (roster.Export, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, rosterLatestKey, func(ctx context.Context) (cachedExport, error) {
		export, exists, err := r.next.GetLatest(ctx)
		if err != nil {
			return cachedExport{}, err
		}
		return cachedExport{value: export, exists: exists}, nil
	})
	if err != nil {
		return roster.Export{}, false, err
	}

	export := cached.value
	export.Entries = append([]roster.Entry(nil), export.Entries...)
	return export, cached.exists, nil
}
