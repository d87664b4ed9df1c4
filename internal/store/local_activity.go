// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-ink-keeper/models"
)

// localActivityRepository stores one JSON record per day under
// ink_activity_<user>_<date>.
type localActivityRepository struct {
	days KeyedRecord[models.Activity]
}

func NewLocalActivityRepository(kv KeyValueStore) ActivityRepository {
	return &localActivityRepository{days: NewKeyedRecord[models.Activity](kv, PrefixActivity, nil)}
}

func (r *localActivityRepository) GetActivity(ctx context.Context, userID, date string) (models.Activity, error) {
	a, err := r.days.Read(ctx, userID, date)
	if err != nil {
		return models.NewActivity(date), err
	}
	if a.Date == "" {
		return models.NewActivity(date), nil
	}
	return a, nil
}

func (r *localActivityRepository) ListActivity(ctx context.Context, userID, from, to string) ([]models.Activity, error) {
	all, err := r.days.ReadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates := slices.Sorted(maps.Keys(all))
	out := make([]models.Activity, 0, len(dates))
	for _, date := range dates {
		if (from != "" && date < from) || (to != "" && date > to) {
			continue
		}
		a := all[date]
		a.Date = date
		out = append(out, a)
	}
	return out, nil
}

func (r *localActivityRepository) UpdateActivity(ctx context.Context, userID, date string, update models.ActivityUpdate) (models.Activity, error) {
	return r.days.Update(ctx, userID, date, func(current models.Activity) (models.Activity, error) {
		if current.Date == "" {
			current = models.NewActivity(date)
		}
		return update.Apply(current), nil
	})
}

func (r *localActivityRepository) IncrementActivity(ctx context.Context, userID, date string, counter models.ActivityCounter, n int64) (models.Activity, error) {
	if !counter.Valid() {
		return models.Activity{}, fmt.Errorf("unknown activity counter %q", counter)
	}

	return r.days.Update(ctx, userID, date, func(current models.Activity) (models.Activity, error) {
		if current.Date == "" {
			current = models.NewActivity(date)
		}
		return current.Add(counter, n), nil
	})
}

func (r *localActivityRepository) Totals(ctx context.Context, userID string) (models.UserStats, error) {
	all, err := r.days.ReadAll(ctx, userID)
	if err != nil {
		return models.UserStats{}, err
	}

	var stats models.UserStats
	for _, a := range all {
		stats.Minutes += a.Minutes
		stats.Words += a.WordsWritten
	}
	stats.Days = len(all)
	return stats, nil
}
