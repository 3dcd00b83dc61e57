package jsontree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Node
	}{
		{"number", "1.5", NumberNode(1.5)},
		{"negative exponent", "-2e-3", NumberNode(-0.002)},
		{"string", `"hi"`, StringNode("hi")},
		{"escaped string", `"a\"bé"`, StringNode("a\"bé")},
		{"true", "true", BoolNode(true)},
		{"false", "false", BoolNode(false)},
		{"null", "null", NullNode()},
		{"surrounding whitespace", "  \n 7 \t", NumberNode(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "Decode(%q) = %+v", tt.in, got)
		})
	}
}

func TestDecode_PreservesOrderAndDuplicates(t *testing.T) {
	root, err := Decode([]byte(`{"Z":1,"A":2,"Z":3}`))
	require.NoError(t, err)

	members, err := root.Members()
	require.NoError(t, err)
	require.Len(t, members, 3)

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"Z", "A", "Z"}, keys)

	last, err := members[2].Value.Number()
	require.NoError(t, err)
	assert.Equal(t, 3.0, last)
}

func TestDecode_Nested(t *testing.T) {
	root, err := Decode([]byte(`[{"X":0.7,"tags":["a",null,true]},[],{}]`))
	require.NoError(t, err)

	want := ArrayNode(
		ObjectNode(
			Member{Key: "X", Value: NumberNode(0.7)},
			Member{Key: "tags", Value: ArrayNode(StringNode("a"), NullNode(), BoolNode(true))},
		),
		ArrayNode(),
		ObjectNode(),
	)
	assert.True(t, Equal(want, root))
}

func TestDecode_DeepNesting(t *testing.T) {
	depth := 20000
	in := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	root, err := Decode([]byte(in))
	require.NoError(t, err)

	n := root
	for i := 1; i < depth; i++ {
		elems, err := n.Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		n = elems[0]
	}
	assert.Equal(t, 0, n.Len())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unterminated array", `[{"X":1}`},
		{"unterminated object", `{"X":1`},
		{"trailing comma in array", `[1,]`},
		{"missing comma", `[1 2]`},
		{"missing colon", `{"X" 1}`},
		{"non-string key", `{1:2}`},
		{"mismatched close", `[1}`},
		{"stray close", `]`},
		{"bad literal", `[tru]`},
		{"bad number", `[01]`},
		{"unterminated string", `["abc]`},
		{"trailing garbage", `[1] x`},
		{"second value", `[1] [2]`},
		{"number overflow", `1e999`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Nil(t, got)
		})
	}
}

func TestNode_WrongAccessor(t *testing.T) {
	n := StringNode("X")

	_, err := n.Number()
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = n.Elements()
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = n.Members()
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = n.Bool()
	assert.ErrorIs(t, err, ErrWrongKind)

	s, err := n.Str()
	require.NoError(t, err)
	assert.Equal(t, "X", s)

	var nilNode *Node
	_, err = nilNode.Number()
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestEncode_RoundTrip(t *testing.T) {
	trees := map[string]*Node{
		"scalar": NumberNode(0.8),
		"spheres": ArrayNode(
			ObjectNode(
				Member{Key: "X", Value: NumberNode(0)},
				Member{Key: "Y", Value: NumberNode(-0.25)},
				Member{Key: "R", Value: NumberNode(0.1)},
				Member{Key: "L", Value: NumberNode(3)},
			),
			StringNode("skip <me> & \"you\""),
			NullNode(),
		),
		"duplicates": ObjectNode(
			Member{Key: "L", Value: NumberNode(1)},
			Member{Key: "L", Value: NumberNode(2)},
			Member{Key: "", Value: BoolNode(false)},
		),
		"empty containers": ArrayNode(ArrayNode(), ObjectNode()),
		"large number":     NumberNode(1e21),
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(tree)
			require.NoError(t, err)

			back, err := Decode(data)
			require.NoError(t, err, "decode %s", data)
			assert.True(t, Equal(tree, back), "round trip of %s", data)
		})
	}
}

func TestEncode_Compact(t *testing.T) {
	tree := ObjectNode(
		Member{Key: "a", Value: ArrayNode(NumberNode(1), NumberNode(2.5))},
		Member{Key: "b", Value: StringNode("<x>")},
	)
	data, err := Encode(tree)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2.5],"b":"<x>"}`, string(data))
}

func TestEqual(t *testing.T) {
	a := ObjectNode(Member{Key: "X", Value: NumberNode(1)}, Member{Key: "Y", Value: NumberNode(2)})
	b := ObjectNode(Member{Key: "Y", Value: NumberNode(2)}, Member{Key: "X", Value: NumberNode(1)})

	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, b), "member order matters")
	assert.False(t, Equal(NumberNode(0), NullNode()))
	assert.False(t, Equal(ArrayNode(), ObjectNode()))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, NullNode()))
}
