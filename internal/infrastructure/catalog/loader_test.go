package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

const sampleCSV = "player_name,team,position,fantasy_pts_2024_25,projected_fantasy_pts_2025_26\n" +
	"Nikola Jokic, DEN ,c,4200.5,4100\n" +
	",BOS,PG,100,100\n" +
	"Jayson Tatum,BOS,SF,n/a,-5\n" +
	"\"Davis, Anthony\",DAL,PF,\"3,600\",3500\n" +
	"Short Row,MIA\n"

func TestParseCSV(t *testing.T) {
	players, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d: %+v", len(players), players)
	}

	jokic := players[0]
	if jokic.Team != "DEN" || jokic.Position != player.PositionCenter || jokic.PriorPoints != 4200.5 {
		t.Fatalf("unexpected first row: %+v", jokic)
	}
	tatum := players[1]
	if tatum.PriorPoints != 0 || tatum.ProjectedPoints != 0 {
		t.Fatalf("invalid points must coerce to 0: %+v", tatum)
	}
	if players[2].Name != "Davis, Anthony" || players[2].PriorPoints != 3600 {
		t.Fatalf("quoted fields not handled: %+v", players[2])
	}
	if players[3].Position != "" || players[3].ProjectedPoints != 0 {
		t.Fatalf("missing columns must be empty: %+v", players[3])
	}
}

func TestParseCSV_RequiresNameColumn(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("name,team\nA,B\n")); err == nil {
		t.Fatalf("expected missing player_name column to fail")
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	loader, err := NewLoader(path, 0, logging.NewNop())
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	players, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(players))
	}

	if _, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background()); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestHTTPLoader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	loader, err := NewLoader(server.URL+"/players.csv", time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	players, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(players))
	}

	if _, err := NewHTTPLoader(server.URL+"/missing.csv", time.Second, logging.NewNop()).Load(context.Background()); err == nil {
		t.Fatalf("expected non-200 to fail")
	}
}
