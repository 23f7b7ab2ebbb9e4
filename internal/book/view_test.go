package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameHas(sub string) Predicate[person] {
	return func(p person) bool { return strings.Contains(p.name, sub) }
}

func TestView_DefaultShowsAll(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)

	assert.Equal(t, []person{alice, bob}, v.Items())
}

func TestView_FollowsSourceLive(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)

	require.NoError(t, l.Add(carol))
	require.NoError(t, l.Remove(alice))

	assert.Equal(t, []person{bob, carol}, v.Items())
}

func TestView_SetPredicateFilters(t *testing.T) {
	l := newTestList(t, alice, bob, carol, dave)
	v := NewView(l)

	v.SetPredicate(nameHas("a"))
	assert.Equal(t, []person{carol, dave}, v.Items())

	v.SetPredicate(nil)
	assert.Equal(t, 4, v.Len())
}

func TestView_PredicateAppliesToLaterChanges(t *testing.T) {
	l := newTestList(t, alice)
	v := NewView(l)
	v.SetPredicate(nameHas("o"))
	assert.Empty(t, v.Items())

	require.NoError(t, l.Add(bob))
	require.NoError(t, l.Add(dave))

	assert.Equal(t, []person{bob}, v.Items())
}

func TestView_SetPredicateEmitsFullReplace(t *testing.T) {
	l := newTestList(t, alice, bob, carol)
	v := NewView(l)
	changes := recordChanges(v)

	v.SetPredicate(nameHas("o"))

	require.Len(t, *changes, 1)
	assert.Equal(t, Change[person]{From: 0, Removed: []person{alice, bob, carol}, Added: []person{bob, carol}}, (*changes)[0])
}

func TestView_SetSamePredicateTwiceIsIdempotent(t *testing.T) {
	l := newTestList(t, alice, bob, carol)
	v := NewView(l)
	changes := recordChanges(v)

	p := nameHas("o")
	v.SetPredicate(p)
	first := v.Items()
	v.SetPredicate(p)

	assert.Len(t, *changes, 1)
	assert.Equal(t, first, v.Items())
}

func TestView_TranslatesPositions(t *testing.T) {
	l := newTestList(t, alice, bob, carol, dave)
	v := NewView(l)
	v.SetPredicate(func(p person) bool { return p.name != "Bob" })
	changes := recordChanges(v)

	// carol is source index 2, view index 1
	require.NoError(t, l.Remove(carol))

	require.Len(t, *changes, 1)
	assert.Equal(t, Change[person]{From: 1, Removed: []person{carol}}, (*changes)[0])
	assert.Equal(t, []person{alice, dave}, v.Items())
}

func TestView_InvisibleChangesAreSilent(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)
	v.SetPredicate(nameHas("Alice"))
	changes := recordChanges(v)

	require.NoError(t, l.Remove(bob))
	require.NoError(t, l.Add(carol))

	assert.Empty(t, *changes)
}

func TestView_ReplaceLeavingFilter(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)
	v.SetPredicate(func(p person) bool { return p.phone == "222" })
	changes := recordChanges(v)

	require.NoError(t, l.Replace(bob, person{"Bob", "999"}))

	require.Len(t, *changes, 1)
	assert.Equal(t, Change[person]{From: 0, Removed: []person{bob}}, (*changes)[0])
	assert.Empty(t, v.Items())
}

func TestView_ReplaceEnteringFilter(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)
	v.SetPredicate(func(p person) bool { return p.phone == "999" })
	changes := recordChanges(v)

	bob2 := person{"Bob", "999"}
	require.NoError(t, l.Replace(bob, bob2))

	require.Len(t, *changes, 1)
	assert.Equal(t, Change[person]{From: 0, Added: []person{bob2}}, (*changes)[0])
	assert.Equal(t, []person{bob2}, v.Items())
}

func TestView_Contains(t *testing.T) {
	l := newTestList(t, alice, bob)
	v := NewView(l)

	assert.True(t, v.Contains(alice))
	assert.False(t, v.Contains(person{"Alice", "000"}), "contains uses full equality")
	assert.Equal(t, 1, v.Index(bob))
}

func TestView_Close(t *testing.T) {
	l := newTestList(t, alice)
	v := NewView(l)
	v.Close()

	require.NoError(t, l.Add(bob))
	assert.Equal(t, []person{alice}, v.Items())
}
