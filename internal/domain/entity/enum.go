package entity

import "fmt"

// enum values are stored and exchanged by their display label. The zero
// value of every enum is invalid so a missing field never decodes into a
// legitimate state.

func enumString[T ~uint8](labels map[T]string, v T) string {
	if s, ok := labels[v]; ok {
		return s
	}
	return fmt.Sprintf("%T(%d)", v, uint8(v))
}

func parseEnum[T ~uint8](labels map[T]string, kind, s string) (T, error) {
	for v, label := range labels {
		if label == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidEnum, kind, s)
}

func marshalEnum[T ~uint8](labels map[T]string, kind string, v T) ([]byte, error) {
	s, ok := labels[v]
	if !ok {
		return nil, fmt.Errorf("%w: invalid %s value %d", ErrInvalidEnum, kind, uint8(v))
	}
	return []byte(s), nil
}

func unmarshalInto[T ~uint8](dst *T, labels map[T]string, kind string, b []byte) error {
	v, err := parseEnum(labels, kind, string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
