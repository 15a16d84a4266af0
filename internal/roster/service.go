// Package roster manages dispatch state: driver preference profiles, load
// candidates, and persisted fit results.
package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// Service provides driver, load, and fit persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new roster Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Driver is a stored driver preference row.
type Driver struct {
	DriverID           string
	DisplayName        string
	HomeBase           *string
	PreferredRegions   []string
	PreferredEquipment []string
	AvoidStates        []string
	MaxDistance        *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Profile converts a stored driver row into a scoring profile.
func (d *Driver) Profile() *fitscore.DriverProfile {
	p := &fitscore.DriverProfile{
		DriverID:           d.DriverID,
		PreferredRegions:   d.PreferredRegions,
		PreferredEquipment: d.PreferredEquipment,
		AvoidStates:        d.AvoidStates,
	}
	if d.HomeBase != nil {
		p.HomeBase = *d.HomeBase
	}
	if d.MaxDistance != nil {
		p.MaxDistance = *d.MaxDistance
	}
	return p
}

// Load is a stored load candidate row.
type Load struct {
	LoadID        string
	OriginState   *string
	DestState     *string
	OriginCity    *string
	DestCity      *string
	EquipmentType *string
	Miles         *float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Load statuses.
const (
	LoadStatusOpen    = "OPEN"
	LoadStatusCovered = "COVERED"
	LoadStatusClosed  = "CLOSED"
)

// Candidate converts a stored load row into a scoring candidate.
func (l *Load) Candidate() fitscore.Load {
	c := fitscore.Load{LoadID: l.LoadID}
	if l.OriginState != nil {
		c.OriginState = *l.OriginState
	}
	if l.DestState != nil {
		c.DestState = *l.DestState
	}
	if l.OriginCity != nil {
		c.OriginCity = *l.OriginCity
	}
	if l.DestCity != nil {
		c.DestCity = *l.DestCity
	}
	if l.EquipmentType != nil {
		c.EquipmentType = *l.EquipmentType
	}
	if l.Miles != nil {
		c.Miles = *l.Miles
	}
	return c
}

// FitRow is a persisted fit result.
type FitRow struct {
	ID         string
	DriverID   string
	LoadID     string
	Score      int
	Verdict    string
	Reasons    json.RawMessage
	Breakdown  json.RawMessage
	Meta       json.RawMessage
	StorageRef string
	CreatedAt  time.Time
}

// UpsertDriver creates or updates a driver preference row.
func (s *Service) UpsertDriver(ctx context.Context, d Driver) (*Driver, error) {
	row := &Driver{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO drivers (driver_id, display_name, home_base, preferred_regions, preferred_equipment, avoid_states, max_distance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (driver_id) DO UPDATE
		   SET display_name = EXCLUDED.display_name,
		       home_base = EXCLUDED.home_base,
		       preferred_regions = EXCLUDED.preferred_regions,
		       preferred_equipment = EXCLUDED.preferred_equipment,
		       avoid_states = EXCLUDED.avoid_states,
		       max_distance = EXCLUDED.max_distance,
		       updated_at = now()
		 RETURNING driver_id, display_name, home_base, preferred_regions, preferred_equipment, avoid_states, max_distance, created_at, updated_at`,
		d.DriverID, d.DisplayName, d.HomeBase,
		pq.Array(d.PreferredRegions), pq.Array(d.PreferredEquipment), pq.Array(d.AvoidStates),
		d.MaxDistance,
	).Scan(
		&row.DriverID, &row.DisplayName, &row.HomeBase,
		pq.Array(&row.PreferredRegions), pq.Array(&row.PreferredEquipment), pq.Array(&row.AvoidStates),
		&row.MaxDistance, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert driver %s: %w", d.DriverID, err)
	}
	return row, nil
}

// GetDriver retrieves a driver by ID.
func (s *Service) GetDriver(ctx context.Context, driverID string) (*Driver, error) {
	row := &Driver{}
	err := s.db.QueryRowContext(ctx,
		`SELECT driver_id, display_name, home_base, preferred_regions, preferred_equipment, avoid_states, max_distance, created_at, updated_at
		 FROM drivers WHERE driver_id = $1`,
		driverID,
	).Scan(
		&row.DriverID, &row.DisplayName, &row.HomeBase,
		pq.Array(&row.PreferredRegions), pq.Array(&row.PreferredEquipment), pq.Array(&row.AvoidStates),
		&row.MaxDistance, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get driver %s: %w", driverID, err)
	}
	return row, nil
}

// ListDrivers returns all drivers ordered by display name.
func (s *Service) ListDrivers(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT driver_id, display_name, home_base, preferred_regions, preferred_equipment, avoid_states, max_distance, created_at, updated_at
		 FROM drivers ORDER BY display_name, driver_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(
			&d.DriverID, &d.DisplayName, &d.HomeBase,
			pq.Array(&d.PreferredRegions), pq.Array(&d.PreferredEquipment), pq.Array(&d.AvoidStates),
			&d.MaxDistance, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// DeleteDriver removes a driver and its persisted fits.
func (s *Service) DeleteDriver(ctx context.Context, driverID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fits WHERE driver_id = $1`, driverID); err != nil {
		return fmt.Errorf("delete fits for driver %s: %w", driverID, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drivers WHERE driver_id = $1`, driverID); err != nil {
		return fmt.Errorf("delete driver %s: %w", driverID, err)
	}
	return nil
}

// UpsertLoad creates or updates a load candidate row.
func (s *Service) UpsertLoad(ctx context.Context, l Load) (*Load, error) {
	if l.Status == "" {
		l.Status = LoadStatusOpen
	}
	row := &Load{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO loads (load_id, origin_state, dest_state, origin_city, dest_city, equipment_type, miles, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (load_id) DO UPDATE
		   SET origin_state = EXCLUDED.origin_state,
		       dest_state = EXCLUDED.dest_state,
		       origin_city = EXCLUDED.origin_city,
		       dest_city = EXCLUDED.dest_city,
		       equipment_type = EXCLUDED.equipment_type,
		       miles = EXCLUDED.miles,
		       status = EXCLUDED.status,
		       updated_at = now()
		 RETURNING load_id, origin_state, dest_state, origin_city, dest_city, equipment_type, miles, status, created_at, updated_at`,
		l.LoadID, l.OriginState, l.DestState, l.OriginCity, l.DestCity, l.EquipmentType, l.Miles, l.Status,
	).Scan(
		&row.LoadID, &row.OriginState, &row.DestState, &row.OriginCity, &row.DestCity,
		&row.EquipmentType, &row.Miles, &row.Status, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert load %s: %w", l.LoadID, err)
	}
	return row, nil
}

// GetLoad retrieves a load by ID.
func (s *Service) GetLoad(ctx context.Context, loadID string) (*Load, error) {
	row := &Load{}
	err := s.db.QueryRowContext(ctx,
		`SELECT load_id, origin_state, dest_state, origin_city, dest_city, equipment_type, miles, status, created_at, updated_at
		 FROM loads WHERE load_id = $1`,
		loadID,
	).Scan(
		&row.LoadID, &row.OriginState, &row.DestState, &row.OriginCity, &row.DestCity,
		&row.EquipmentType, &row.Miles, &row.Status, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get load %s: %w", loadID, err)
	}
	return row, nil
}

// ListLoads returns all loads, newest first.
func (s *Service) ListLoads(ctx context.Context) ([]Load, error) {
	return s.listLoads(ctx,
		`SELECT load_id, origin_state, dest_state, origin_city, dest_city, equipment_type, miles, status, created_at, updated_at
		 FROM loads ORDER BY created_at DESC`,
	)
}

// ListOpenLoads returns loads still open for dispatch, newest first.
func (s *Service) ListOpenLoads(ctx context.Context) ([]Load, error) {
	return s.listLoads(ctx,
		`SELECT load_id, origin_state, dest_state, origin_city, dest_city, equipment_type, miles, status, created_at, updated_at
		 FROM loads WHERE status = $1 ORDER BY created_at DESC`,
		LoadStatusOpen,
	)
}

func (s *Service) listLoads(ctx context.Context, query string, args ...any) ([]Load, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loads: %w", err)
	}
	defer rows.Close()

	var loads []Load
	for rows.Next() {
		var l Load
		if err := rows.Scan(
			&l.LoadID, &l.OriginState, &l.DestState, &l.OriginCity, &l.DestCity,
			&l.EquipmentType, &l.Miles, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// DeleteLoad removes a load and its persisted fits.
func (s *Service) DeleteLoad(ctx context.Context, loadID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fits WHERE load_id = $1`, loadID); err != nil {
		return fmt.Errorf("delete fits for load %s: %w", loadID, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM loads WHERE load_id = $1`, loadID); err != nil {
		return fmt.Errorf("delete load %s: %w", loadID, err)
	}
	return nil
}

// InsertFit persists a computed fit result and returns the stored row.
func (s *Service) InsertFit(ctx context.Context, id string, result fitscore.FitResult, storageRef string) (*FitRow, error) {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return nil, fmt.Errorf("marshal reasons: %w", err)
	}
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}
	meta, err := json.Marshal(result.Meta)
	if err != nil {
		return nil, fmt.Errorf("marshal meta: %w", err)
	}

	row := &FitRow{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO fits (id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (driver_id, load_id) DO UPDATE
		   SET score = EXCLUDED.score,
		       verdict = EXCLUDED.verdict,
		       reasons = EXCLUDED.reasons,
		       breakdown = EXCLUDED.breakdown,
		       meta = EXCLUDED.meta,
		       storage_ref = EXCLUDED.storage_ref,
		       created_at = now()
		 RETURNING id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref, created_at`,
		id, result.DriverID, result.LoadID, result.Score, string(result.Verdict),
		reasons, breakdown, meta, storageRef,
	).Scan(
		&row.ID, &row.DriverID, &row.LoadID, &row.Score, &row.Verdict,
		&row.Reasons, &row.Breakdown, &row.Meta, &row.StorageRef, &row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert fit %s/%s: %w", result.DriverID, result.LoadID, err)
	}
	return row, nil
}

// GetFit retrieves a persisted fit by ID.
func (s *Service) GetFit(ctx context.Context, id string) (*FitRow, error) {
	row := &FitRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref, created_at
		 FROM fits WHERE id = $1`,
		id,
	).Scan(
		&row.ID, &row.DriverID, &row.LoadID, &row.Score, &row.Verdict,
		&row.Reasons, &row.Breakdown, &row.Meta, &row.StorageRef, &row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get fit %s: %w", id, err)
	}
	return row, nil
}

// ListFitsByDriver returns a driver's persisted fits, best score first.
func (s *Service) ListFitsByDriver(ctx context.Context, driverID string) ([]FitRow, error) {
	return s.listFits(ctx,
		`SELECT id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref, created_at
		 FROM fits WHERE driver_id = $1 ORDER BY score DESC, load_id`,
		driverID,
	)
}

// ListFitsByLoad returns a load's persisted fits, best score first.
func (s *Service) ListFitsByLoad(ctx context.Context, loadID string) ([]FitRow, error) {
	return s.listFits(ctx,
		`SELECT id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref, created_at
		 FROM fits WHERE load_id = $1 ORDER BY score DESC, driver_id`,
		loadID,
	)
}

// ListAllFits returns every persisted fit, oldest first.
func (s *Service) ListAllFits(ctx context.Context) ([]FitRow, error) {
	return s.listFits(ctx,
		`SELECT id, driver_id, load_id, score, verdict, reasons, breakdown, meta, storage_ref, created_at
		 FROM fits ORDER BY created_at ASC`,
	)
}

func (s *Service) listFits(ctx context.Context, query string, args ...any) ([]FitRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fits: %w", err)
	}
	defer rows.Close()

	var fits []FitRow
	for rows.Next() {
		var f FitRow
		if err := rows.Scan(
			&f.ID, &f.DriverID, &f.LoadID, &f.Score, &f.Verdict,
			&f.Reasons, &f.Breakdown, &f.Meta, &f.StorageRef, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fit: %w", err)
		}
		fits = append(fits, f)
	}
	return fits, rows.Err()
}

// UpdateFitScore rewrites the scoring fields of an existing fit row in place.
func (s *Service) UpdateFitScore(ctx context.Context, id string, result fitscore.FitResult) error {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	meta, err := json.Marshal(result.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE fits SET score = $1, verdict = $2, reasons = $3, breakdown = $4, meta = $5 WHERE id = $6`,
		result.Score, string(result.Verdict), reasons, breakdown, meta, id,
	)
	if err != nil {
		return fmt.Errorf("update fit %s: %w", id, err)
	}
	return nil
}
