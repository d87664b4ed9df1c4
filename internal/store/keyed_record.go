// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ink-keeper/internal/logger"
)

// Codec converts a record to and from its stored text form.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// JSONCodec stores records as compact JSON.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	return string(b), nil
}

func (JSONCodec[T]) Decode(s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	return v, nil
}

// RawCodec stores a string as is.
type RawCodec struct{}

func (RawCodec) Encode(v string) (string, error) { return v, nil }
func (RawCodec) Decode(s string) (string, error) { return s, nil }

// KeyedRecord is a per-user record of type T in the embedded store, addressed
// by prefix+userID or prefix+userID+"_"+subKey.
//
// Read never reports a missing key: it returns the value of empty instead.
// A stored value that no longer decodes is treated the same way and logged.
type KeyedRecord[T any] struct {
	kv     KeyValueStore
	prefix string
	codec  Codec[T]
	empty  func() T
}

// NewKeyedRecord builds a JSON-encoded record. A nil empty yields the zero
// value of T.
func NewKeyedRecord[T any](kv KeyValueStore, prefix string, empty func() T) KeyedRecord[T] {
	return NewKeyedRecordWithCodec[T](kv, prefix, JSONCodec[T]{}, empty)
}

func NewKeyedRecordWithCodec[T any](kv KeyValueStore, prefix string, codec Codec[T], empty func() T) KeyedRecord[T] {
	if empty == nil {
		empty = func() T {
			var zero T
			return zero
		}
	}
	return KeyedRecord[T]{kv: kv, prefix: prefix, codec: codec, empty: empty}
}

// Key returns the storage key of the record.
func (r KeyedRecord[T]) Key(userID, subKey string) string {
	return UserKey(r.prefix, userID, subKey)
}

func (r KeyedRecord[T]) Read(ctx context.Context, userID, subKey string) (T, error) {
	key := r.Key(userID, subKey)

	entry, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return r.empty(), nil
	}
	if err != nil {
		return r.empty(), err
	}

	return r.decode(ctx, key, entry.Value), nil
}

func (r KeyedRecord[T]) Write(ctx context.Context, userID, subKey string, value T) error {
	encoded, err := r.codec.Encode(value)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, r.Key(userID, subKey), encoded)
}

// Update applies fn to the current value and writes the result with a
// compare-and-swap, so two concurrent updates never lose each other. A stored
// value that cannot be decoded is left in place and [ErrEncodingValue] is
// returned.
func (r KeyedRecord[T]) Update(ctx context.Context, userID, subKey string, fn func(current T) (T, error)) (T, error) {
	key := r.Key(userID, subKey)

	var result T
	err := r.kv.Update(ctx, key, func(current string, exists bool) (string, error) {
		value := r.empty()
		if exists {
			decoded, err := r.codec.Decode(current)
			if err != nil {
				logger.FromContext(ctx).Error().Err(err).Str("key", key).Msg("stored value is unreadable, refusing to overwrite")
				return "", err
			}
			value = decoded
		}

		next, err := fn(value)
		if err != nil {
			return "", err
		}
		result = next

		return r.codec.Encode(next)
	})
	if err != nil {
		return r.empty(), err
	}

	return result, nil
}

// ReadAll returns every sub-keyed record of the user keyed by sub key.
func (r KeyedRecord[T]) ReadAll(ctx context.Context, userID string) (map[string]T, error) {
	prefix := UserSubKeyPrefix(r.prefix, userID)

	entries, err := r.kv.Scan(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make(map[string]T, len(entries))
	for _, e := range entries {
		out[e.Key[len(prefix):]] = r.decode(ctx, e.Key, e.Value)
	}
	return out, nil
}

func (r KeyedRecord[T]) decode(ctx context.Context, key, value string) T {
	v, err := r.codec.Decode(value)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("stored value is unreadable, using empty default")
		return r.empty()
	}
	return v
}

// KeyedList is a [KeyedRecord] holding a slice. Append adds one item under a
// compare-and-swap.
type KeyedList[T any] struct {
	KeyedRecord[[]T]
	prepend bool
}

// NewKeyedList builds a list record. With newestFirst set Append puts the new
// item in front.
func NewKeyedList[T any](kv KeyValueStore, prefix string, newestFirst bool) KeyedList[T] {
	return KeyedList[T]{
		KeyedRecord: NewKeyedRecord(kv, prefix, func() []T { return []T{} }),
		prepend:     newestFirst,
	}
}

func (l KeyedList[T]) Append(ctx context.Context, userID, subKey string, item T) ([]T, error) {
	return l.Update(ctx, userID, subKey, func(current []T) ([]T, error) {
		if l.prepend {
			return append([]T{item}, current...), nil
		}
		return append(current, item), nil
	})
}
