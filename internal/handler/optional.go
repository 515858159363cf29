package handler

import "encoding/json"

// Optional distinguishes a JSON field that was absent, explicitly null, or set
// to a value. Partial updates leave absent fields untouched while an explicit
// null clears the stored value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
