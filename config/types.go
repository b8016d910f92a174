package config

import "encoding/json"

type Map map[string]string

// UnmarshalText allows a Map to be supplied as a JSON object through an
// environment variable.
func (m *Map) UnmarshalText(text []byte) error {
	return json.Unmarshal(text, (*map[string]string)(m))
}
