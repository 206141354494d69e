package mapjson

import (
	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a 64-bit xxhash of v's canonical encoding (compact,
// keys ordered). Logically equal trees hash equally across runs and
// processes. The encoding is hashed as it streams out; it is never held in
// full.
//
// opt may carry MaxDepth, EscapeSolidus, AllowInvalidUTF8 and Logger;
// OrderKeys and Indent are always overridden to keep the form canonical.
func ContentHash(v Value, opt ...EncodeOpt) (uint64, error) {
	var o EncodeOpt
	if len(opt) > 0 {
		o = opt[0]
	}
	o.OrderKeys = true
	o.Indent = ""

	d := xxhash.New()
	enc := NewEncoder(o)
	defer enc.Close()
	err := enc.Serialize(v, DefaultFlushThreshold, func(p []byte) error {
		_, err := d.Write(p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}
