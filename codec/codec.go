// Package codec selects the JSON encoder used for structured output.
//
// The codec only affects how JSONL recommendation rows are rendered. Both
// built-in codecs produce interchangeable bytes for the row types in this
// module, so switching codecs never breaks downstream readers.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json", "":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names lists the names accepted by ByName.
func Names() []string {
	return []string{"go-json", "json"}
}

// AppendLine marshals v with c, appends it to dst and terminates it with a
// newline.
func AppendLine(c Codec, dst []byte, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	if a, ok := c.(interface {
		Append(dst []byte, v any) ([]byte, error)
	}); ok {
		out, err := a.Append(dst, v)
		if err != nil {
			return dst, fmt.Errorf("codec %s: %w", c.Name(), err)
		}
		return append(out, '\n'), nil
	}
	b, err := c.Marshal(v)
	if err != nil {
		return dst, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	dst = append(dst, b...)
	return append(dst, '\n'), nil
}
