package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtom(t *testing.T) {
	tests := []struct {
		token string
		want  Atom
	}{
		{"room(3)", Atom{Name: "room", Args: []Value{Number(3)}}},
		{"corridor(1,5)", Atom{Name: "corridor", Args: []Value{Number(1), Number(5)}}},
		{"item_is(2,potion)", Atom{Name: "item_is", Args: []Value{Number(2), Symbol("potion")}}},
		{"is_spawn(1)", Atom{Name: "is_spawn", Args: []Value{Number(1)}}},
		{"sat", Atom{Name: "sat"}},
		{"empty()", Atom{Name: "empty"}},
	}
	for _, tt := range tests {
		got, ok := ParseAtom(tt.token)
		require.True(t, ok, "token %q should parse", tt.token)
		assert.Equal(t, tt.want, got, "token %q", tt.token)
	}
}

func TestParseAtomRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "Room(1)", "3room(1)", "room(1", "room)1("} {
		_, ok := ParseAtom(token)
		assert.False(t, ok, "token %q should not parse", token)
	}
}

func TestAtomAccessors(t *testing.T) {
	a, ok := ParseAtom("enemy_is(4,goblin)")
	require.True(t, ok)

	assert.Equal(t, 4, a.Int(0))
	assert.Equal(t, "goblin", a.Text(1))
	assert.Equal(t, 0, a.Int(1), "symbolic arg read as int yields zero")
	assert.Equal(t, 0, a.Int(7), "out of range yields zero")
	assert.Equal(t, "enemy_is(4,goblin)", a.String())
}

func TestFactsRoundTrip(t *testing.T) {
	var f Facts
	f.Const("bound_x", 40)
	f.Add("room", 1)
	f.Add("room_w", 1, 6)
	f.Add("item_is", 2, "potion")

	want := "#const bound_x = 40.\nroom(1).\nroom_w(1,6).\nitem_is(2,potion).\n"
	assert.Equal(t, want, f.String())
	assert.False(t, f.Empty())
}

func TestFactsAddAtom(t *testing.T) {
	a, ok := ParseAtom("corridor(1,2)")
	require.True(t, ok)

	var f Facts
	f.AddAtom(a)
	assert.Equal(t, "corridor(1,2).\n", f.String())
}
