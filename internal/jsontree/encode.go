package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode writes n as compact JSON text, keeping member order and duplicate keys.
func Encode(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrWrongKind)
	}

	switch n.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if n.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		b, err := json.Marshal(n.num)
		if err != nil {
			return fmt.Errorf("encode number: %w", err)
		}
		buf.Write(b)
	case KindString:
		if err := encodeString(buf, n.str); err != nil {
			return err
		}
	case KindArray:
		buf.WriteByte('[')
		for i, elem := range n.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range n.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeNode(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrWrongKind, n.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	// Encoder appends a newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
