// Package timex adds a JSON-friendly wrapper around time.Duration so config
// files can write intervals the way people read them.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration accepts either a time.ParseDuration string ("90s", "1h30m") or a
// bare number of nanoseconds. It marshals back to the string form.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		d.Duration = parsed
	case float64:
		d.Duration = time.Duration(v)
	default:
		return fmt.Errorf("cannot parse %s as a duration", data)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}
