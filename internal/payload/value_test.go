package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() Value {
	return Mapping(map[string]Value{
		"root": Mapping(map[string]Value{
			"total": Scalar("3"),
			"name":  Scalar("acme"),
			"items": Sequence(Scalar("a"), Scalar("b")),
			"empty": Null(),
		}),
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	tests := []struct {
		name string
		keys []string
		want Value
	}{
		{name: "no keys returns the node itself", keys: nil, want: tree},
		{name: "nested scalar", keys: []string{"root", "total"}, want: Scalar("3")},
		{name: "missing key", keys: []string{"root", "missing"}, want: Null()},
		{name: "missing top level", keys: []string{"nope", "total"}, want: Null()},
		{name: "through a scalar", keys: []string{"root", "name", "deeper"}, want: Null()},
		{name: "through a sequence", keys: []string{"root", "items", "0"}, want: Null()},
		{name: "through null", keys: []string{"root", "empty", "x"}, want: Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tree.Get(tt.keys...)
			assert.True(t, tt.want.Equal(got), "got %v", got.Interface())
		})
	}
}

func TestGetNeverPanics(t *testing.T) {
	t.Parallel()

	nodes := []Value{Null(), Scalar(""), Scalar("x"), Sequence(), Sequence(Null()), Mapping(nil), sampleTree()}
	keys := [][]string{nil, {""}, {"root"}, {"root", "items"}, {"a", "b", "c", "d"}}

	for _, node := range nodes {
		for _, path := range keys {
			assert.NotPanics(t, func() { _ = node.Get(path...) })
		}
	}
}

func TestGetOr(t *testing.T) {
	t.Parallel()

	tree := sampleTree()
	def := Scalar("0")

	assert.Equal(t, "3", tree.GetOr(def, "root", "total").String())
	assert.Equal(t, "0", tree.GetOr(def, "root", "missing").String())
	assert.Equal(t, "0", tree.GetOr(def, "root", "empty").String())
}

func TestAsList(t *testing.T) {
	t.Parallel()

	t.Run("null is empty", func(t *testing.T) {
		got := Null().AsList()
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("scalar is wrapped", func(t *testing.T) {
		got := Scalar("x").AsList()
		require.Len(t, got, 1)
		assert.Equal(t, "x", got[0].String())
	})

	t.Run("mapping is wrapped", func(t *testing.T) {
		m := Mapping(map[string]Value{"id": Scalar("1")})
		got := m.AsList()
		require.Len(t, got, 1)
		assert.True(t, m.Equal(got[0]))
	})

	t.Run("sequence keeps its backing slice", func(t *testing.T) {
		items := []Value{Scalar("a"), Scalar("b")}
		got := Sequence(items...).AsList()
		require.Len(t, got, 2)
		assert.Same(t, &items[0], &got[0])
	})

	t.Run("empty sequence stays empty", func(t *testing.T) {
		got := Sequence().AsList()
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	bs, err := json.Marshal(sampleTree())
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":{"total":"3","name":"acme","items":["a","b"],"empty":null}}`, string(bs))
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"empty", "items", "name", "total"}, sampleTree().Get("root").Keys())
	assert.Nil(t, Scalar("x").Keys())
}
