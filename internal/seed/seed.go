// Package seed imports loads from a CSV file on startup. Rows that cannot be
// parsed are skipped with a warning rather than aborting the import.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"loadboard/internal/loads"
)

var requiredColumns = []string{"load_id", "origin", "destination", "pickup_datetime", "delivery_datetime"}

// LoadCSV reads path and creates one load per row via svc. Seeded rows count
// as manual-channel writes. Returns the number of loads created.
func LoadCSV(ctx context.Context, log *slog.Logger, svc *loads.Service, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("seed: read header: %w", err)
	}
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return 0, fmt.Errorf("seed: missing required column %q", col)
		}
	}

	loaded := 0
	duplicates := 0
	row := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			log.Warn("seed: skipping malformed row", "row", row, "err", err)
			continue
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		req := loads.CreateLoadRequest{
			LoadID:      get("load_id"),
			Origin:      get("origin"),
			Destination: get("destination"),
		}
		if req.LoadID == "" || req.Origin == "" || req.Destination == "" {
			continue
		}

		pickup, err := parseTimestamp(get("pickup_datetime"))
		if err != nil {
			log.Warn("seed: bad pickup_datetime", "row", row, "err", err)
			continue
		}
		delivery, err := parseTimestamp(get("delivery_datetime"))
		if err != nil {
			log.Warn("seed: bad delivery_datetime", "row", row, "err", err)
			continue
		}
		req.PickupDatetime = pickup
		req.DeliveryDatetime = delivery

		req.EquipmentType = optString(get("equipment_type"))
		req.CommodityType = optString(get("commodity_type"))
		req.Dimensions = optString(get("dimensions"))
		req.Notes = optString(get("notes"))
		req.LoadboardRate = optFloat(log, row, "loadboard_rate", get("loadboard_rate"))
		req.Weight = optFloat(log, row, "weight", get("weight"))
		req.Miles = optFloat(log, row, "miles", get("miles"))
		req.NumOfPieces = optInt(log, row, "num_of_pieces", get("num_of_pieces"))

		// Seed rows come in pending unless marked agreed with the required
		// fields; anything else falls back to pending.
		if st := loads.Status(strings.ToLower(get("status"))); st == loads.StatusAgreed {
			req.Status = &st
			req.AgreedPrice = optFloat(log, row, "agreed_price", get("agreed_price"))
			req.CarrierDescription = optString(get("carrier_description"))
		}

		l, err := svc.Create(ctx, req, loads.ChannelManual)
		if errors.Is(err, loads.ErrDuplicateLoadID) {
			duplicates++
			renamed := fmt.Sprintf("%s-DUP%d", req.LoadID, duplicates)
			log.Warn("seed: duplicate load_id, renaming", "load_id", req.LoadID, "renamed", renamed)
			req.LoadID = renamed
			l, err = svc.Create(ctx, req, loads.ChannelManual)
		}
		if err != nil {
			log.Warn("seed: skipping row", "row", row, "err", err)
			continue
		}
		_ = l
		loaded++
	}

	return loaded, nil
}

func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optFloat(log *slog.Logger, row int, col, v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn("seed: unparsable number", "row", row, "column", col, "value", v)
		return nil
	}
	return &f
}

func optInt(log *slog.Logger, row int, col, v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("seed: unparsable integer", "row", row, "column", col, "value", v)
		return nil
	}
	return &n
}
