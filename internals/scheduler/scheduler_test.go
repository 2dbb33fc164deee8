package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/helpers/tenant"
)

type fakeLister struct {
	list []tenant.Tenant
	err  error
}

func (f fakeLister) ListActive(context.Context) ([]tenant.Tenant, error) { return f.list, f.err }

func tenants(slugs ...string) []tenant.Tenant {
	out := make([]tenant.Tenant, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, tenant.Tenant{Slug: s, Schema: tenant.SchemaFor(s)})
	}
	return out
}

func TestRunNowVisitsEveryTenant(t *testing.T) {
	s := New(fakeLister{list: tenants("a", "b", "c")}, nil)
	var seen []string
	res := s.RunNow(context.Background(), Job{
		Name: "test",
		Run: func(ctx context.Context, tn tenant.Tenant) error {
			got, ok := tenant.FromContext(ctx)
			require.True(t, ok)
			assert.Equal(t, tn.Slug, got.Slug)
			seen = append(seen, tn.Slug)
			switch tn.Slug {
			case "b":
				return errors.New("boom")
			case "c":
				panic("kaboom")
			}
			return nil
		},
	})
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, Result{Tenants: 3, Failed: 2}, res)
}

func TestRunNowListError(t *testing.T) {
	s := New(fakeLister{err: errors.New("db down")}, nil)
	called := false
	res := s.RunNow(context.Background(), Job{Name: "x", Run: func(context.Context, tenant.Tenant) error {
		called = true
		return nil
	}})
	assert.False(t, called)
	assert.Equal(t, Result{}, res)
}

func TestRunNowStopsOnCancelledContext(t *testing.T) {
	s := New(fakeLister{list: tenants("a", "b")}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := s.RunNow(ctx, Job{Name: "x", Run: func(context.Context, tenant.Tenant) error { return nil }})
	assert.Equal(t, 0, res.Tenants)
}

func TestAdd(t *testing.T) {
	s := New(fakeLister{}, nil)
	noop := func(context.Context, tenant.Tenant) error { return nil }
	assert.NoError(t, s.Add(Job{Name: "off", Run: noop}))
	assert.NoError(t, s.Add(Job{Name: "nightly", Spec: "5 0 * * *", Run: noop}))
	assert.Error(t, s.Add(Job{Name: "bad", Spec: "not a spec", Run: noop}))
	assert.Len(t, s.cron.Entries(), 1)
}
