package kjson

import (
	"bytes"
	"encoding/json"

	"xorkevin.dev/kerrors"
)

// ErrInvalidJSON is returned when decoding malformed json
var ErrInvalidJSON errInvalidJSON

type (
	errInvalidJSON struct{}
)

func (e errInvalidJSON) Error() string {
	return "Invalid json"
}

// Marshal marshals json without escaping html. The output ends with a
// newline.
func Marshal(v interface{}) ([]byte, error) {
	var b bytes.Buffer
	j := json.NewEncoder(&b)
	j.SetEscapeHTML(false)
	if err := j.Encode(v); err != nil {
		return nil, kerrors.WithMsg(err, "Failed to encode json")
	}
	return b.Bytes(), nil
}

// Unmarshal unmarshals json with the option UseNumber
func Unmarshal(data []byte, v interface{}) error {
	if !json.Valid(data) {
		return kerrors.WithKind(nil, ErrInvalidJSON, "Malformed json")
	}
	j := json.NewDecoder(bytes.NewReader(data))
	j.UseNumber()
	if err := j.Decode(v); err != nil {
		return kerrors.WithKind(err, ErrInvalidJSON, "Failed to decode json")
	}
	return nil
}
