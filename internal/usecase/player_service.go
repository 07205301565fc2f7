package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/platform/cache"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	PlayerSortName      = "name"
	PlayerSortTeam      = "team"
	PlayerSortPosition  = "position"
	PlayerSortPrior     = "prior"
	PlayerSortProjected = "projected"

	SortAsc  = "asc"
	SortDesc = "desc"

	autocompleteMinChars = 2
	autocompleteLimit    = 8

	catalogCacheKey = "catalog"
)

type PlayerListQuery struct {
	Team     string
	Position string
	SortBy   string
	SortDir  string
}

type PlayerList struct {
	Items   []player.Player `json:"items"`
	Total   int             `json:"total"`
	SortBy  string          `json:"sort_by"`
	SortDir string          `json:"sort_dir"`
}

type draftedSource interface {
	Drafted(ctx context.Context, draftID string) (*draft.Availability, error)
}

type PlayerService struct {
	loader  player.Loader
	cache   *cache.Store[*player.Catalog]
	drafted draftedSource
	logger  *logging.Logger
}

func NewPlayerService(loader player.Loader, catalogCache *cache.Store[*player.Catalog], logger *logging.Logger) *PlayerService {
	if catalogCache == nil {
		catalogCache = cache.NewStore[*player.Catalog](0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		loader: loader,
		cache:  catalogCache,
		logger: logger,
	}
}

// SetDraftedSource lets autocomplete hide players already taken in a draft.
func (s *PlayerService) SetDraftedSource(src draftedSource) {
	s.drafted = src
}

// Catalog returns the cached player catalog, loading it on a miss. An empty
// load counts as unavailable.
func (s *PlayerService) Catalog(ctx context.Context) (*player.Catalog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Catalog")
	defer span.End()

	catalog, err := s.cache.GetOrLoad(ctx, catalogCacheKey, func(ctx context.Context) (*player.Catalog, error) {
		players, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		catalog := player.NewCatalog(players)
		if catalog.Len() == 0 {
			return nil, fmt.Errorf("catalog has no players")
		}
		s.logger.InfoContext(ctx, "player catalog loaded", "players", catalog.Len())
		return catalog, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "player catalog unavailable", "error", err)
		return nil, fmt.Errorf("%w: %w: %v", ErrDependencyUnavailable, draft.ErrCatalogUnavailable, err)
	}

	return catalog, nil
}

// List filters the catalog by exact team and position and sorts it. The
// default order is prior-season points, highest first.
func (s *PlayerService) List(ctx context.Context, query PlayerListQuery) (PlayerList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	sortBy := strings.ToLower(strings.TrimSpace(query.SortBy))
	if sortBy == "" {
		sortBy = PlayerSortPrior
	}
	sortDir := strings.ToLower(strings.TrimSpace(query.SortDir))
	if sortDir == "" {
		sortDir = SortDesc
	}
	if sortDir != SortAsc && sortDir != SortDesc {
		return PlayerList{}, fmt.Errorf("%w: sort_dir must be asc or desc", ErrInvalidInput)
	}
	compare, err := playerComparator(sortBy)
	if err != nil {
		return PlayerList{}, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return PlayerList{}, err
	}

	team := strings.TrimSpace(query.Team)
	position := player.NormalizePosition(query.Position)
	items := make([]player.Player, 0, catalog.Len())
	for _, p := range catalog.Players() {
		if team != "" && p.Team != team {
			continue
		}
		if position != "" && p.Position != position {
			continue
		}
		items = append(items, p)
	}

	slices.SortStableFunc(items, func(a, b player.Player) int {
		if sortDir == SortAsc {
			return compare(a, b)
		}
		return compare(b, a)
	})

	return PlayerList{
		Items:   items,
		Total:   len(items),
		SortBy:  sortBy,
		SortDir: sortDir,
	}, nil
}

func playerComparator(sortBy string) (func(a, b player.Player) int, error) {
	switch sortBy {
	case PlayerSortPrior:
		return func(a, b player.Player) int { return cmp.Compare(a.PriorPoints, b.PriorPoints) }, nil
	case PlayerSortProjected:
		return func(a, b player.Player) int { return cmp.Compare(a.ProjectedPoints, b.ProjectedPoints) }, nil
	case PlayerSortName, PlayerSortTeam, PlayerSortPosition:
		col := collate.New(language.English)
		field := func(p player.Player) string {
			switch sortBy {
			case PlayerSortName:
				return p.Name
			case PlayerSortTeam:
				return p.Team
			default:
				return string(p.Position)
			}
		}
		return func(a, b player.Player) int { return col.CompareString(field(a), field(b)) }, nil
	default:
		return nil, fmt.Errorf("%w: unsupported sort column %q", ErrInvalidInput, sortBy)
	}
}

func (s *PlayerService) Teams(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Teams")
	defer span.End()

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Teams(), nil
}

// Autocomplete returns up to eight catalog players whose name contains the
// query, ignoring case. Queries shorter than two characters match nothing.
func (s *PlayerService) Autocomplete(ctx context.Context, draftID, query string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Autocomplete")
	defer span.End()

	needle := player.FoldName(query)
	if utf8.RuneCountInString(needle) < autocompleteMinChars {
		return []player.Player{}, nil
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var drafted *draft.Availability
	if draftID = strings.TrimSpace(draftID); draftID != "" {
		if s.drafted == nil {
			return nil, fmt.Errorf("%w: draft lookup is not configured", ErrDependencyUnavailable)
		}
		drafted, err = s.drafted.Drafted(ctx, draftID)
		if err != nil {
			return nil, err
		}
	}

	hits := make([]player.Player, 0, autocompleteLimit)
	for _, p := range catalog.Players() {
		if drafted.Contains(p.Name) {
			continue
		}
		if !strings.Contains(player.FoldName(p.Name), needle) {
			continue
		}
		hits = append(hits, p)
		if len(hits) == autocompleteLimit {
			break
		}
	}

	return hits, nil
}
