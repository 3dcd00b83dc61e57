package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode parses data into a Node tree.
// Any grammar violation, including empty input and trailing content after the
// first value, returns an error wrapping ErrMalformedInput.
func Decode(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	root, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Exactly one top-level value is allowed
	tok, err := dec.Token()
	if err == nil {
		return nil, fmt.Errorf("%w: trailing content %v", ErrMalformedInput, tok)
	}
	if !errors.Is(err, io.EOF) {
		return nil, malformed(err)
	}

	return root, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedInput, rune(v))
		}
	case float64:
		return NumberNode(v), nil
	case string:
		return StringNode(v), nil
	case bool:
		return BoolNode(v), nil
	case nil:
		return NullNode(), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %T", ErrMalformedInput, tok)
	}
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	elems := []*Node{}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return ArrayNode(elems...), nil
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	members := []Member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key must be a string, got %v", ErrMalformedInput, tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key, Value: value})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ObjectNode(members...), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedInput, rune(want), tok)
	}
	return nil
}

// malformed wraps a decoder error. A bare io.EOF means the input ended early.
func malformed(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	return fmt.Errorf("%w: %v", ErrMalformedInput, err)
}
