package providerclient

import (
	"bytes"

	"github.com/goccy/go-json"
)

// FlexibleID decodes identifiers that providers send either as strings or numbers.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = FlexibleID(value)
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*id = FlexibleID(data)
	return nil
}

func (id FlexibleID) String() string {
	return string(id)
}
