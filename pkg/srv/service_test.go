package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, s)
}

type fakeService struct {
	name  string
	rec   *recorder
	start func(ctx context.Context) error
}

func (f *fakeService) Start(ctx context.Context) error {
	return f.start(ctx)
}

func (f *fakeService) Shutdown(context.Context) error {
	f.rec.add(f.name)
	return nil
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestRun_StopsWhenServiceReturns(t *testing.T) {
	rec := &recorder{}
	services := []Service{
		&fakeService{name: "db", rec: rec, start: blockUntilDone},
		&fakeService{name: "cli", rec: rec, start: func(context.Context) error { return nil }},
	}

	err := Run(context.Background(), services)
	assert.NoError(t, err)
	assert.Equal(t, []string{"cli", "db"}, rec.order)
}

func TestRun_ReturnsStartError(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	services := []Service{
		&fakeService{name: "db", rec: rec, start: blockUntilDone},
		&fakeService{name: "cli", rec: rec, start: func(context.Context) error { return boom }},
	}

	err := Run(context.Background(), services)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, rec.order, 2)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Run(ctx, []Service{&fakeService{name: "db", rec: rec, start: blockUntilDone}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"db"}, rec.order)
}

func TestCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, svc.Start(ctx))
	assert.NoError(t, svc.Shutdown(ctx))
	assert.True(t, called)
}
