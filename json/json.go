// Wrap the json library to control encoding. Snapshot rows must
// serialize with their columns in insertion order, which the
// standard library map encoding can not do.

package json

import (
	"bytes"

	"github.com/Velocidex/json"
	"github.com/Velocidex/ordereddict"
)

// NewEncOpts returns encoder options with the ordered row encoder
// installed. All serialization in this package goes through these
// options.
func NewEncOpts() *json.EncOpts {
	opts := json.NewEncOpts()
	opts.WithCallback(ordereddict.NewDict(), MarshalJSONDict)
	return opts
}

func MarshalJSONDict(v interface{}, opts *json.EncOpts) ([]byte, error) {
	self, ok := v.(*ordereddict.Dict)
	if !ok {
		return nil, json.EncoderCallbackSkip
	}

	out := bytes.Buffer{}
	out.WriteByte('{')

	for idx, k := range self.Keys() {
		if idx > 0 {
			out.WriteByte(',')
		}

		escaped_key, err := json.MarshalWithOptions(k, opts)
		if err != nil {
			return nil, err
		}
		out.Write(escaped_key)
		out.WriteByte(':')

		value, ok := self.Get(k)
		if !ok {
			out.WriteString("null")
			continue
		}

		serialized, err := json.MarshalWithOptions(value, opts)
		if err != nil {
			out.WriteString("null")
			continue
		}
		out.Write(serialized)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}
