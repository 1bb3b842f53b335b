package syncdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func raw(s string) json.RawMessage { return json.RawMessage(`"` + s + `"`) }

func TestMap_SetWins_LaterTag(t *testing.T) {
	m := NewMap()
	m.Set("k", Tag{Timestamp: 1, Replica: "a"}, raw("first"))
	m.Set("k", Tag{Timestamp: 2, Replica: "a"}, raw("second"))
	v, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, raw("second"), v)
}

func TestMap_SetLoses_EarlierTag(t *testing.T) {
	m := NewMap()
	m.Set("k", Tag{Timestamp: 5, Replica: "a"}, raw("later"))
	applied := m.Set("k", Tag{Timestamp: 1, Replica: "a"}, raw("earlier"))
	assert.False(t, applied)
	v, _ := m.Get("k")
	assert.Equal(t, raw("later"), v)
}

func TestMap_TagTieBrokenByReplica(t *testing.T) {
	m := NewMap()
	m.Set("k", Tag{Timestamp: 1, Replica: "a"}, raw("from-a"))
	m.Set("k", Tag{Timestamp: 1, Replica: "z"}, raw("from-z"))
	v, _ := m.Get("k")
	assert.Equal(t, raw("from-z"), v, "higher replica id wins a timestamp tie")
}

func TestMap_DeleteThenConcurrentEarlierSetDoesNotResurrect(t *testing.T) {
	m := NewMap()
	m.Delete("k", Tag{Timestamp: 10, Replica: "a"})
	m.Set("k", Tag{Timestamp: 5, Replica: "b"}, raw("stale"))
	_, ok := m.Get("k")
	assert.False(t, ok)
}

func TestMap_MergeConverges_RegardlessOfOrder(t *testing.T) {
	a := NewMap()
	a.Set("x", Tag{Timestamp: 1, Replica: "a"}, raw("a1"))
	a.Set("y", Tag{Timestamp: 3, Replica: "a"}, raw("a3"))

	b := NewMap()
	b.Set("x", Tag{Timestamp: 2, Replica: "b"}, raw("b2"))
	b.Set("y", Tag{Timestamp: 1, Replica: "b"}, raw("b1"))

	merged1 := NewMap()
	merged1.Merge(a)
	merged1.Merge(b)

	merged2 := NewMap()
	merged2.Merge(b)
	merged2.Merge(a)

	assert.Equal(t, merged1.snapshot(), merged2.snapshot())

	x, _ := merged1.Get("x")
	assert.Equal(t, raw("b2"), x)
	y, _ := merged1.Get("y")
	assert.Equal(t, raw("a3"), y)
}

func TestMap_MergeIsIdempotent(t *testing.T) {
	a := NewMap()
	a.Set("x", Tag{Timestamp: 1, Replica: "a"}, raw("v"))

	m := NewMap()
	m.Merge(a)
	m.Merge(a)
	m.Merge(a)

	assert.Equal(t, 1, len(m.entries))
}
