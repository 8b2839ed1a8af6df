package loads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"loadboard/pkg/utils"
)

// PostgresRepo persists loads and phone calls in Postgres via database/sql.
// Selected with STORE_DRIVER=postgres; the memory repo remains the default.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

var _ Repository = (*PostgresRepo)(nil)

// EnsureSchema creates the tables if they do not exist. Migration tooling is
// out of scope; the schema is small enough to own here.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS shipments (
  id                    TEXT PRIMARY KEY,
  load_id               TEXT NOT NULL UNIQUE,
  origin                TEXT NOT NULL,
  destination           TEXT NOT NULL,
  pickup_datetime       TIMESTAMPTZ NOT NULL,
  delivery_datetime     TIMESTAMPTZ NOT NULL,
  equipment_type        TEXT,
  loadboard_rate        DOUBLE PRECISION,
  notes                 TEXT,
  weight                DOUBLE PRECISION,
  commodity_type        TEXT,
  num_of_pieces         INTEGER,
  miles                 DOUBLE PRECISION,
  dimensions            TEXT,
  agreed_price          DOUBLE PRECISION,
  carrier_description   TEXT,
  assigned_via_url      BOOLEAN NOT NULL DEFAULT FALSE,
  time_per_call_seconds DOUBLE PRECISION,
  status                TEXT NOT NULL,
  created_at            TIMESTAMPTZ NOT NULL,
  updated_at            TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS phone_calls (
  id          TEXT PRIMARY KEY,
  shipment_id TEXT NOT NULL REFERENCES shipments(id) ON DELETE CASCADE,
  seconds     DOUBLE PRECISION NOT NULL,
  call_type   TEXT NOT NULL,
  sentiment   TEXT NOT NULL,
  agreed      BOOLEAN NOT NULL,
  call_id     TEXT,
  notes       TEXT,
  created_at  TIMESTAMPTZ NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

const loadColumns = `id, load_id, origin, destination, pickup_datetime, delivery_datetime,
equipment_type, loadboard_rate, notes, weight, commodity_type, num_of_pieces,
miles, dimensions, agreed_price, carrier_description, assigned_via_url,
time_per_call_seconds, status, created_at, updated_at`

func scanLoad(row interface{ Scan(...any) error }) (Load, error) {
	var l Load
	err := row.Scan(
		&l.ID,
		&l.LoadID,
		&l.Origin,
		&l.Destination,
		&l.PickupDatetime,
		&l.DeliveryDatetime,
		&l.EquipmentType,
		&l.LoadboardRate,
		&l.Notes,
		&l.Weight,
		&l.CommodityType,
		&l.NumOfPieces,
		&l.Miles,
		&l.Dimensions,
		&l.AgreedPrice,
		&l.CarrierDescription,
		&l.AssignedViaURL,
		&l.TimePerCallSeconds,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func (r *PostgresRepo) InsertLoad(ctx context.Context, l Load) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM shipments WHERE load_id = $1)`, l.LoadID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrDuplicateLoadID
		}

		const q = `
INSERT INTO shipments (` + loadColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
`
		_, err := tx.ExecContext(ctx, q,
			l.ID, l.LoadID, l.Origin, l.Destination, l.PickupDatetime, l.DeliveryDatetime,
			l.EquipmentType, l.LoadboardRate, l.Notes, l.Weight, l.CommodityType, l.NumOfPieces,
			l.Miles, l.Dimensions, l.AgreedPrice, l.CarrierDescription, l.AssignedViaURL,
			l.TimePerCallSeconds, l.Status, l.CreatedAt, l.UpdatedAt,
		)
		return err
	})
}

func (r *PostgresRepo) GetLoad(ctx context.Context, ref string) (Load, error) {
	const q = `SELECT ` + loadColumns + ` FROM shipments WHERE id = $1 OR load_id = $1 LIMIT 1`
	l, err := scanLoad(r.db.QueryRowContext(ctx, q, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Load{}, ErrNotFound
		}
		return Load{}, err
	}
	return l, nil
}

func (r *PostgresRepo) ListLoads(ctx context.Context, f Filters) ([]Load, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + loadColumns + ` FROM shipments`)

	var conds []string
	var args []any
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.EquipmentType != "" {
		add("equipment_type ILIKE '%%' || $%d || '%%'", f.EquipmentType)
	}
	if f.CommodityType != "" {
		add("commodity_type ILIKE '%%' || $%d || '%%'", f.CommodityType)
	}
	if f.Origin != "" {
		add("origin ILIKE '%%' || $%d || '%%'", f.Origin)
	}
	if f.Destination != "" {
		add("destination ILIKE '%%' || $%d || '%%'", f.Destination)
	}
	if f.PickupFrom != nil {
		add("pickup_datetime >= $%d", *f.PickupFrom)
	}
	if f.PickupTo != nil {
		add("pickup_datetime <= $%d", *f.PickupTo)
	}
	if f.DeliveryFrom != nil {
		add("delivery_datetime >= $%d", *f.DeliveryFrom)
	}
	if f.DeliveryTo != nil {
		add("delivery_datetime <= $%d", *f.DeliveryTo)
	}
	if f.AssignedViaURL != nil {
		add("assigned_via_url = $%d", *f.AssignedViaURL)
	}
	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(load_id ILIKE '%%' || $%d || '%%'
   OR origin ILIKE '%%' || $%d || '%%'
   OR destination ILIKE '%%' || $%d || '%%'
   OR commodity_type ILIKE '%%' || $%d || '%%'
   OR notes ILIKE '%%' || $%d || '%%')`, n, n, n, n, n))
	}

	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(sortExpr(f.SortBy))
	if strings.EqualFold(f.SortOrder, SortDesc) {
		b.WriteString(" DESC")
	} else {
		b.WriteString(" ASC")
	}
	// Deterministic tie-break mirroring insertion order.
	b.WriteString(", created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Load, 0)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// sortExpr maps a sort field to a SQL expression. Only known fields are
// emitted; anything else falls back to created_at.
func sortExpr(sortBy string) string {
	switch sortBy {
	case SortByPickupDatetime:
		return "pickup_datetime"
	case SortByDeliveryDatetime:
		return "delivery_datetime"
	case SortByLoadboardRate:
		return "COALESCE(loadboard_rate, 0)"
	case SortByMiles:
		return "COALESCE(miles, 0)"
	default:
		return "created_at"
	}
}

func (r *PostgresRepo) UpdateLoad(ctx context.Context, l Load) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM shipments WHERE load_id = $1 AND id <> $2)`,
			l.LoadID, l.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrDuplicateLoadID
		}

		const q = `
UPDATE shipments SET
  load_id = $2, origin = $3, destination = $4,
  pickup_datetime = $5, delivery_datetime = $6,
  equipment_type = $7, loadboard_rate = $8, notes = $9, weight = $10,
  commodity_type = $11, num_of_pieces = $12, miles = $13, dimensions = $14,
  agreed_price = $15, carrier_description = $16, assigned_via_url = $17,
  time_per_call_seconds = $18, status = $19, updated_at = $20
WHERE id = $1
`
		res, err := tx.ExecContext(ctx, q,
			l.ID, l.LoadID, l.Origin, l.Destination,
			l.PickupDatetime, l.DeliveryDatetime,
			l.EquipmentType, l.LoadboardRate, l.Notes, l.Weight,
			l.CommodityType, l.NumOfPieces, l.Miles, l.Dimensions,
			l.AgreedPrice, l.CarrierDescription, l.AssignedViaURL,
			l.TimePerCallSeconds, l.Status, l.UpdatedAt,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) DeleteLoad(ctx context.Context, id string) error {
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM phone_calls WHERE shipment_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) RandomLoad(ctx context.Context) (Load, error) {
	const q = `SELECT ` + loadColumns + ` FROM shipments ORDER BY random() LIMIT 1`
	l, err := scanLoad(r.db.QueryRowContext(ctx, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Load{}, ErrNotFound
		}
		return Load{}, err
	}
	return l, nil
}

const callColumns = `id, shipment_id, seconds, call_type, sentiment, agreed, call_id, notes, created_at`

func scanPhoneCall(row interface{ Scan(...any) error }) (PhoneCall, error) {
	var c PhoneCall
	err := row.Scan(
		&c.ID,
		&c.ShipmentID,
		&c.Seconds,
		&c.CallType,
		&c.Sentiment,
		&c.Agreed,
		&c.CallID,
		&c.Notes,
		&c.CreatedAt,
	)
	return c, err
}

func (r *PostgresRepo) InsertPhoneCall(ctx context.Context, c PhoneCall) error {
	const q = `
INSERT INTO phone_calls (` + callColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.ShipmentID, c.Seconds, c.CallType, c.Sentiment, c.Agreed, c.CallID, c.Notes, c.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) ListPhoneCallsByLoad(ctx context.Context, loadUUID string) ([]PhoneCall, error) {
	const q = `SELECT ` + callColumns + ` FROM phone_calls WHERE shipment_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, loadUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PhoneCall, 0)
	for rows.Next() {
		c, err := scanPhoneCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) DeletePhoneCallsByLoad(ctx context.Context, loadUUID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phone_calls WHERE shipment_id = $1`, loadUUID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *PostgresRepo) ListPhoneCalls(ctx context.Context, f CallFilters) ([]PhoneCall, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + callColumns + ` FROM phone_calls`)

	var conds []string
	var args []any
	if f.CallType != nil {
		args = append(args, *f.CallType)
		conds = append(conds, fmt.Sprintf("call_type = $%d", len(args)))
	}
	if f.Agreed != nil {
		args = append(args, *f.Agreed)
		conds = append(conds, fmt.Sprintf("agreed = $%d", len(args)))
	}
	if f.Sentiment != nil {
		args = append(args, *f.Sentiment)
		conds = append(conds, fmt.Sprintf("sentiment = $%d", len(args)))
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PhoneCall, 0)
	for rows.Next() {
		c, err := scanPhoneCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
