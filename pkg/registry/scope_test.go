package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

func badgeKind() component.Kind {
	return component.Kind{
		Name:     "badge",
		Defaults: content.Model{"label": "New"},
		Constraints: constraint.MustSet(map[string]constraint.Rule{
			"label": {MaxLength: constraint.Int(12)},
		}),
		Template: `<span>{{ label }}</span>`,
	}
}

func newBadgeScope(builds *int32) *Scope {
	kind := badgeKind()
	return NewScope(FactoryFunc(func(initial content.Model) component.Component {
		if builds != nil {
			atomic.AddInt32(builds, 1)
		}
		return kind.New(initial)
	}))
}

func TestScope_SameKeyReturnsSameInstance(t *testing.T) {
	scope := newBadgeScope(nil)
	key := NewKey("hero-badge")

	first := scope.Get(key, content.Model{"label": "Beta"})
	second := scope.Get(key, nil)

	require.Same(t, first, second)
	require.Equal(t, 1, scope.Len())
}

func TestScope_DistinctKeysDistinctInstances(t *testing.T) {
	scope := newBadgeScope(nil)
	initial := content.Model{"label": "Beta"}

	a := scope.Get(NewKey("badge"), initial)
	b := scope.Get(NewKey("badge"), initial)

	require.NotSame(t, a, b)
	require.Equal(t, a.Content(), b.Content())
	require.Equal(t, 2, scope.Len())
}

func TestScope_InitialContentOnlyHonouredOnFirstCall(t *testing.T) {
	scope := newBadgeScope(nil)
	key := NewKey("badge")

	first := scope.Get(key, content.Model{"label": "Beta"})
	second := scope.Get(key, content.Model{"label": "Ignored"})

	require.Same(t, first, second)
	label, _ := second.Content().String("label")
	require.Equal(t, "Beta", label)
}

func TestScope_ReleaseAndClose(t *testing.T) {
	var builds int32
	scope := newBadgeScope(&builds)
	key := NewKey("badge")

	first := scope.Get(key, nil)
	require.True(t, scope.Release(key))
	require.False(t, scope.Release(key))

	rebuilt := scope.Get(key, nil)
	require.NotSame(t, first, rebuilt)
	require.EqualValues(t, 2, builds)

	scope.Close()
	require.True(t, scope.Closed())
	require.Zero(t, scope.Len())

	a := scope.Get(key, nil)
	b := scope.Get(key, nil)
	require.NotSame(t, a, b)
	require.Zero(t, scope.Len())
}

func TestScope_AcquireReportsBuilds(t *testing.T) {
	scope := newBadgeScope(nil)
	key := NewKey("nav-badge")

	first, built := scope.Acquire(key, nil)
	require.True(t, built)
	second, built := scope.Acquire(key, nil)
	require.False(t, built)
	require.Same(t, first, second)

	_, built = scope.Acquire(nil, nil)
	require.True(t, built)
}

func TestScope_NilKeyIsNeverStored(t *testing.T) {
	scope := newBadgeScope(nil)
	a := scope.Get(nil, nil)
	b := scope.Get(nil, nil)
	require.NotSame(t, a, b)
	require.Zero(t, scope.Len())

	_, ok := scope.Lookup(nil)
	require.False(t, ok)
}

func TestScope_ConcurrentGetBuildsOnce(t *testing.T) {
	var builds int32
	scope := newBadgeScope(&builds)
	key := NewKey("shared")

	var wg sync.WaitGroup
	results := make([]component.Component, 32)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = scope.Get(key, nil)
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, builds)
	for _, inst := range results {
		require.Same(t, results[0], inst)
	}
}

func TestKey_Identity(t *testing.T) {
	a := NewKey("card")
	b := NewKey("card")
	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, "card", a.Label())
	require.Contains(t, a.String(), "card(")

	var nilKey *Key
	require.Equal(t, "<nil>", nilKey.String())
}

func TestContextCarrier(t *testing.T) {
	scope := newBadgeScope(nil)
	ctx := WithScope(context.Background(), scope)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Same(t, scope, got)

	_, ok = FromContext(context.Background())
	require.False(t, ok)
}
