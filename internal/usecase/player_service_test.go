package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/draft-companion/internal/domain/draft"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	playermock "github.com/riskibarqy/draft-companion/internal/mocks/domain/player"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type draftedFunc func(ctx context.Context, draftID string) (*draft.Availability, error)

func (f draftedFunc) Drafted(ctx context.Context, draftID string) (*draft.Availability, error) {
	return f(ctx, draftID)
}

func samplePlayers() []player.Player {
	return []player.Player{
		{Name: "Nikola Jokic", Team: "DEN", Position: player.PositionCenter, PriorPoints: 4200, ProjectedPoints: 4100},
		{Name: "Jamal Murray", Team: "DEN", Position: player.PositionPointGuard, PriorPoints: 2500, ProjectedPoints: 2700},
		{Name: "Jayson Tatum", Team: "BOS", Position: player.PositionSmallForward, PriorPoints: 3400, ProjectedPoints: 3300},
		{Name: "Jrue Holiday", Team: "BOS", Position: player.PositionPointGuard, PriorPoints: 2100, ProjectedPoints: 2000},
		{Name: "Anthony Davis", Team: "DAL", Position: player.PositionPowerForward, PriorPoints: 3600, ProjectedPoints: 3500},
	}
}

func TestPlayerService_CatalogLoadsOnceUsingMockery(t *testing.T) {
	t.Parallel()

	loader := playermock.NewLoader(t)
	loader.On("Load", mock.Anything).Return(samplePlayers(), nil).Once()
	service := NewPlayerService(loader, nil, logging.NewNop())

	for range 3 {
		catalog, err := service.Catalog(context.Background())
		if err != nil {
			t.Fatalf("catalog: %v", err)
		}
		if catalog.Len() != 5 {
			t.Fatalf("unexpected catalog size %d", catalog.Len())
		}
	}
}

func TestPlayerService_CatalogUnavailableUsingMockery(t *testing.T) {
	t.Parallel()

	loader := playermock.NewLoader(t)
	loader.On("Load", mock.Anything).Return(nil, errors.New("csv missing")).Once()
	loader.On("Load", mock.Anything).Return([]player.Player{}, nil).Once()
	service := NewPlayerService(loader, nil, logging.NewNop())

	for i := range 2 {
		_, err := service.Catalog(context.Background())
		if !errors.Is(err, ErrDependencyUnavailable) || !errors.Is(err, draft.ErrCatalogUnavailable) {
			t.Fatalf("attempt %d: expected catalog unavailable, got %v", i+1, err)
		}
	}
}

func TestPlayerService_ListFilterAndSort(t *testing.T) {
	t.Parallel()

	loader := playermock.NewLoader(t)
	loader.On("Load", mock.Anything).Return(samplePlayers(), nil).Once()
	service := NewPlayerService(loader, nil, logging.NewNop())
	ctx := context.Background()

	tests := []struct {
		name  string
		query PlayerListQuery
		want  []string
	}{
		{
			name:  "default prior desc",
			query: PlayerListQuery{},
			want:  []string{"Nikola Jokic", "Anthony Davis", "Jayson Tatum", "Jamal Murray", "Jrue Holiday"},
		},
		{
			name:  "team filter projected asc",
			query: PlayerListQuery{Team: "DEN", SortBy: "projected", SortDir: "asc"},
			want:  []string{"Jamal Murray", "Nikola Jokic"},
		},
		{
			name:  "position filter name asc",
			query: PlayerListQuery{Position: "pg", SortBy: "name", SortDir: "asc"},
			want:  []string{"Jamal Murray", "Jrue Holiday"},
		},
		{
			name:  "team desc",
			query: PlayerListQuery{SortBy: "team"},
			want:  []string{"Nikola Jokic", "Jamal Murray", "Anthony Davis", "Jayson Tatum", "Jrue Holiday"},
		},
	}

	for _, tc := range tests {
		got, err := service.List(ctx, tc.query)
		if err != nil {
			t.Fatalf("%s: list players: %v", tc.name, err)
		}
		if got.Total != len(tc.want) {
			t.Fatalf("%s: unexpected total %d", tc.name, got.Total)
		}
		for i, name := range tc.want {
			if got.Items[i].Name != name {
				t.Fatalf("%s: index %d got=%s want=%s", tc.name, i, got.Items[i].Name, name)
			}
		}
	}

	if _, err := service.List(ctx, PlayerListQuery{SortBy: "height"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unsupported column to be rejected, got %v", err)
	}
	if _, err := service.List(ctx, PlayerListQuery{SortDir: "up"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected bad direction to be rejected, got %v", err)
	}
}

func TestPlayerService_Autocomplete(t *testing.T) {
	t.Parallel()

	loader := playermock.NewLoader(t)
	loader.On("Load", mock.Anything).Return(samplePlayers(), nil).Once()
	service := NewPlayerService(loader, nil, logging.NewNop())
	service.SetDraftedSource(draftedFunc(func(_ context.Context, draftID string) (*draft.Availability, error) {
		drafted := draft.NewAvailability()
		if draftID == "d1" {
			drafted.Add("Jamal Murray")
		}
		return drafted, nil
	}))
	ctx := context.Background()

	hits, err := service.Autocomplete(ctx, "", "j")
	if err != nil || len(hits) != 0 {
		t.Fatalf("single character must match nothing, hits=%d err=%v", len(hits), err)
	}

	hits, err = service.Autocomplete(ctx, "", "JA")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if len(hits) != 2 || hits[0].Name != "Jamal Murray" || hits[1].Name != "Jayson Tatum" {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	hits, err = service.Autocomplete(ctx, "d1", "ja")
	if err != nil {
		t.Fatalf("autocomplete with draft: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Jayson Tatum" {
		t.Fatalf("drafted players must be excluded, got %+v", hits)
	}
}
