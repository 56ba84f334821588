package ioc

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirect_Service(t *testing.T) {
	ctx := context.Background()
	counter := int32(0)
	c := New().
		WithSingleton(Service("B"), countingFactory(&counter)).
		WithRedirects(NewRedirectRules().Service("A", "B"))

	viaA, err := c.Resolve(ctx, Service("A"))
	require.NoError(t, err)
	viaB, err := c.Resolve(ctx, Service("B"))
	require.NoError(t, err)

	assert.Same(t, viaA, viaB)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestRedirect_LaterBindingsAreNotRedirected(t *testing.T) {
	ctx := context.Background()
	c := New().
		WithSingleton(Service("B"), constant("b")).
		WithRedirects(NewRedirectRules().Service("A", "B")).
		WithSingleton(Service("A"), constant("a"))

	assert.Equal(t, "a", Get[string](ctx, c, Service("A")))
}

func TestRedirect_Variant(t *testing.T) {
	ctx := context.Background()
	c := New().
		WithSingleton(ServiceVariant("Store", "disk"), constant("disk")).
		WithSingleton(ServiceVariant("Store", "memory"), constant("memory")).
		WithRedirects(NewRedirectRules().Variant("", "memory").Variant("fast", "memory"))

	assert.Equal(t, "memory", Get[string](ctx, c, Service("Store")))
	assert.Equal(t, "memory", Get[string](ctx, c, ServiceVariant("Store", "fast")))
	assert.Equal(t, "disk", Get[string](ctx, c, ServiceVariant("Store", "disk")))
	assert.Equal(t, []string{"", "disk", "fast", "memory"}, c.Variants("Store"))
}

func TestRedirect_VariantsOfRedirectedService(t *testing.T) {
	c := New().
		WithSingleton(ServiceVariant("B", "x"), constant("x")).
		WithRedirects(NewRedirectRules().Service("A", "B").Variant("y", "missing"))

	assert.Equal(t, []string{"x"}, c.Variants("A"))
	assert.Empty(t, c.Variants("C"))
}

func TestRedirect_CacheRename(t *testing.T) {
	ctx := context.Background()
	counter := int32(0)
	c := New().
		WithTransient(Service("Conn"), countingFactory(&counter), InCache("X")).
		WithRedirects(NewRedirectRules().Cache("X", "C")).
		WithCache("C")

	first, err := c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)
	second, err := c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestRedirect_CacheFromNoCache(t *testing.T) {
	ctx := context.Background()
	counter := int32(0)
	c := New().
		WithTransient(Service("Conn"), countingFactory(&counter)).
		WithRedirects(NewRedirectRules().Cache(NoCache, "C")).
		WithCache("C")

	_, err := c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)
	_, err = c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestRedirect_CacheToNoCache(t *testing.T) {
	ctx := context.Background()
	counter := int32(0)
	c := New().
		WithTransient(Service("Conn"), countingFactory(&counter), InCache("C")).
		WithRedirects(NewRedirectRules().Cache("C", NoCache)).
		WithCache("C")

	_, err := c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)
	_, err = c.Resolve(ctx, Service("Conn"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&counter))
	assert.Equal(t, 0, cachesOf(c)[0].store.len())
}

func TestRedirect_ShadowedRequestIsNotRewritten(t *testing.T) {
	ctx := context.Background()
	s := Service("S")

	c := New().
		WithSingleton(Service("T"), constant("t")).
		WithSingleton(s, constant("base")).
		WithTransient(s, wrapping(s, "deco")).
		WithRedirects(NewRedirectRules().Service("A", "S").Service("S", "T"))

	assert.Equal(t, "deco(base)", Get[string](ctx, c, Service("A")))
	assert.Equal(t, "t", Get[string](ctx, c, s))
}

func TestRedirect_RulesAreCopied(t *testing.T) {
	ctx := context.Background()
	rules := NewRedirectRules().Service("A", "B")
	c := New().
		WithSingleton(Service("B"), constant("b")).
		WithSingleton(Service("C"), constant("c")).
		WithRedirects(rules)

	rules.Services["A"] = "C"

	assert.Equal(t, "b", Get[string](ctx, c, Service("A")))
}

func TestRedirect_ZeroRules(t *testing.T) {
	ctx := context.Background()
	c := New().
		WithSingleton(Service("B"), constant("b")).
		WithRedirects(RedirectRules{})

	assert.Equal(t, "b", Get[string](ctx, c, Service("B")))
}
