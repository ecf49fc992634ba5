package rangeset

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// pairs is the wire form of a List: one [min, max] pair per interval.
func (l *List) pairs() [][2]int64 {
	out := make([][2]int64, len(l.ranges))
	for i, r := range l.ranges {
		out[i] = [2]int64{r.Min, r.Max}
	}
	return out
}

func (l *List) MarshalYAML() (interface{}, error) {
	return l.pairs(), nil
}

// UnmarshalYAML accepts a sequence whose items are either a single integer
// or a [min, max] pair. Items are inserted with Add, so unsorted or
// overlapping input is normalised.
func (l *List) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: range list must be a sequence: %w", value.Line, ErrInvalidArgument)
	}

	out := New()
	for _, item := range value.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			var v int64
			if err := item.Decode(&v); err != nil {
				return err
			}
			out.Add(v, v)
		case yaml.SequenceNode:
			var bounds []int64
			if err := item.Decode(&bounds); err != nil {
				return err
			}
			if len(bounds) != 2 {
				return fmt.Errorf("line %d: range needs exactly two bounds, got %d: %w", item.Line, len(bounds), ErrInvalidArgument)
			}
			out.Add(bounds[0], bounds[1])
		default:
			return fmt.Errorf("line %d: unexpected range item: %w", item.Line, ErrInvalidArgument)
		}
	}
	l.ranges = out.ranges
	return nil
}

func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.pairs())
}

func (l *List) UnmarshalJSON(data []byte) error {
	var pairs [][2]int64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("decode range list: %w", err)
	}
	out := New()
	for _, p := range pairs {
		out.Add(p[0], p[1])
	}
	l.ranges = out.ranges
	return nil
}
