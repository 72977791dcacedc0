package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tag is a single key/value pair of OSM-style feature metadata.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered key-value sequence. Icon classification iterates tags
// in stored order and the first matching key wins, so the order in which
// the upstream JSON document listed its keys is preserved through
// decoding instead of being flattened into an unordered map.
type Tags []Tag

func (t Tags) Get(key string) (string, bool) {
	for _, kv := range t {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func (t Tags) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// UnmarshalJSON decodes a JSON object via the token stream so that key
// order survives. null decodes to empty tags.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("tags: expected object, got %v", tok)
	}

	out := Tags{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("tags key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tags key: unexpected token %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("tags value for %q: %w", key, err)
		}
		out = append(out, Tag{Key: key, Value: val})
	}
	*t = out
	return nil
}

// MarshalJSON emits the tags as a JSON object in stored order.
func (t Tags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map flattens the tags into an unordered map, for callers that do not
// care about classification order (e.g. GeoJSON export properties).
func (t Tags) Map() map[string]string {
	if len(t) == 0 {
		return map[string]string{}
	}
	m := make(map[string]string, len(t))
	for _, kv := range t {
		m[kv.Key] = kv.Value
	}
	return m
}
