package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// List decodes every record of table into T, in insertion order.
func List[T any](ctx context.Context, h Handle, table string) ([]T, error) {
	raws, err := h.GetAll(ctx, table)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Find decodes one record into T. It returns nil, nil when id is absent.
func Find[T any](ctx context.Context, h Handle, table, id string) (*T, error) {
	raw, err := h.Get(ctx, table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", table, id, err)
	}
	return &v, nil
}
