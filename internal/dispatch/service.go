package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/atlascommand/atlasfit/internal/roster"
	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// Availability abstracts the on-duty driver roster so the dispatch package
// does not depend on a concrete implementation.
type Availability interface {
	OnDuty(ctx context.Context) ([]string, error)
}

// Service orchestrates the fit pipeline: it resolves driver profiles and
// load candidates, runs the scoring engine, persists the result row, and
// archives the full blob.
type Service struct {
	roster       *roster.Service
	storage      StorageClient
	engine       *fitscore.Engine
	availability Availability
	orgID        string
}

// NewService creates a new dispatch Service. availability may be nil when
// on-duty fan-out is not needed (CLI usage).
func NewService(rs *roster.Service, storage StorageClient, engine *fitscore.Engine, availability Availability, orgID string) *Service {
	if orgID == "" {
		orgID = "default"
	}
	return &Service{
		roster:       rs,
		storage:      storage,
		engine:       engine,
		availability: availability,
		orgID:        orgID,
	}
}

// RankSheet is an archived ranking of open loads for one driver.
type RankSheet struct {
	ID          string           `json:"id"`
	DriverID    string           `json:"driver_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Entries     []RankSheetEntry `json:"entries"`
}

// RankSheetEntry is one ranked load in a rank sheet.
type RankSheetEntry struct {
	Rank   int                `json:"rank"`
	Result fitscore.FitResult `json:"result"`
}

// ScorePair scores one driver against one load, archives the result blob,
// and upserts the fit row. Missing driver or load is an error.
func (s *Service) ScorePair(ctx context.Context, driverID, loadID string) (*roster.FitRow, error) {
	d, err := s.roster.GetDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("resolve driver: %w", err)
	}
	l, err := s.roster.GetLoad(ctx, loadID)
	if err != nil {
		return nil, fmt.Errorf("resolve load: %w", err)
	}
	row, _, err := s.scoreAndPersist(ctx, d.Profile(), l.Candidate())
	return row, err
}

func (s *Service) scoreAndPersist(ctx context.Context, profile *fitscore.DriverProfile, load fitscore.Load) (*roster.FitRow, fitscore.FitResult, error) {
	result := s.engine.FitLoadForDriver(profile, load)

	fitID := uuid.NewString()
	data, err := json.Marshal(result)
	if err != nil {
		return nil, result, fmt.Errorf("marshal fit result: %w", err)
	}

	storageRef := fmt.Sprintf("%s/fits/%s.json", s.orgID, fitID)
	if err := s.storage.PutFit(ctx, s.orgID, fitID, data); err != nil {
		return nil, result, fmt.Errorf("put fit blob: %w", err)
	}

	row, err := s.roster.InsertFit(ctx, fitID, result, storageRef)
	if err != nil {
		return nil, result, fmt.Errorf("insert fit row: %w", err)
	}
	return row, result, nil
}

// RankLoadsForDriver scores every open load against a driver, orders by
// score (best first, load ID as tiebreak), persists each fit, and archives
// the rank sheet.
func (s *Service) RankLoadsForDriver(ctx context.Context, driverID string) (*RankSheet, error) {
	d, err := s.roster.GetDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("resolve driver: %w", err)
	}
	loads, err := s.roster.ListOpenLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open loads: %w", err)
	}

	profile := d.Profile()
	results := make([]fitscore.FitResult, 0, len(loads))
	for _, l := range loads {
		_, result, err := s.scoreAndPersist(ctx, profile, l.Candidate())
		if err != nil {
			return nil, fmt.Errorf("score load %s: %w", l.LoadID, err)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].LoadID < results[j].LoadID
	})

	sheet := &RankSheet{
		ID:          uuid.NewString(),
		DriverID:    driverID,
		GeneratedAt: time.Now().UTC(),
	}
	for i, r := range results {
		sheet.Entries = append(sheet.Entries, RankSheetEntry{Rank: i + 1, Result: r})
	}

	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("marshal rank sheet: %w", err)
	}
	if err := s.storage.PutRankSheet(ctx, s.orgID, sheet.ID, data); err != nil {
		return nil, fmt.Errorf("put rank sheet blob: %w", err)
	}

	log.Printf("rank sheet %s generated: driver=%s loads=%d", sheet.ID, driverID, len(results))
	return sheet, nil
}

// ScoreLoadAgainstOnDuty scores a load against every on-duty driver and
// persists the fits. Results come back best score first, driver ID as
// tiebreak. Drivers missing from the roster are skipped.
func (s *Service) ScoreLoadAgainstOnDuty(ctx context.Context, loadID string) ([]fitscore.FitResult, error) {
	if s.availability == nil {
		return nil, fmt.Errorf("availability store not configured")
	}
	l, err := s.roster.GetLoad(ctx, loadID)
	if err != nil {
		return nil, fmt.Errorf("resolve load: %w", err)
	}
	driverIDs, err := s.availability.OnDuty(ctx)
	if err != nil {
		return nil, fmt.Errorf("list on-duty drivers: %w", err)
	}

	load := l.Candidate()
	var results []fitscore.FitResult
	for _, driverID := range driverIDs {
		d, err := s.roster.GetDriver(ctx, driverID)
		if err != nil {
			log.Printf("skipping on-duty driver %s: %v", driverID, err)
			continue
		}
		_, result, err := s.scoreAndPersist(ctx, d.Profile(), load)
		if err != nil {
			return nil, fmt.Errorf("score driver %s: %w", driverID, err)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DriverID < results[j].DriverID
	})

	log.Printf("load %s scored against %d on-duty drivers", loadID, len(results))
	return results, nil
}
