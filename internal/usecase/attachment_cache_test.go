package usecase

import (
	"context"
	"errors"
	"testing"

	"messenger-client/internal/domain/entity"
	memoryRepo "messenger-client/internal/interface/repository"
	"messenger-client/pkg/logger"
	"messenger-client/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCache(m *metrics.Metrics) *AttachmentCache {
	return NewAttachmentCache(memoryRepo.NewMemoryReusableRepository(), logger.NewNopLogger(), m)
}

func TestAttachmentCacheLookupRecord(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(nil)

	if err := cache.Record(ctx, "u1", "a1"); err != nil {
		t.Fatal(err)
	}

	if id, ok, err := cache.Lookup(ctx, "u1"); err != nil || !ok || id != "a1" {
		t.Errorf("Lookup(u1) = %q, %v, %v; want a1, true, nil", id, ok, err)
	}
	if id, ok, err := cache.Lookup(ctx, "u2"); err != nil || ok || id != "" {
		t.Errorf("Lookup(u2) = %q, %v, %v; want empty, false, nil", id, ok, err)
	}
}

func TestAttachmentCacheIdempotentLastWriteWins(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(nil)

	for i := 0; i < 2; i++ {
		if err := cache.Record(ctx, "u1", "a1"); err != nil {
			t.Fatal(err)
		}
	}
	if id, _, _ := cache.Lookup(ctx, "u1"); id != "a1" {
		t.Errorf("after repeated record, Lookup(u1) = %q, want a1", id)
	}

	if err := cache.Record(ctx, "u1", "a2"); err != nil {
		t.Fatal(err)
	}
	if id, _, _ := cache.Lookup(ctx, "u1"); id != "a2" {
		t.Errorf("after overwrite, Lookup(u1) = %q, want a2", id)
	}
}

func TestAttachmentCacheRecordRequiresBothValues(t *testing.T) {
	cache := newTestCache(nil)
	for _, tc := range [][2]string{{"", "a1"}, {"u1", ""}} {
		if err := cache.Record(context.Background(), tc[0], tc[1]); !errors.Is(err, entity.ErrInvalidPayload) {
			t.Errorf("Record(%q, %q) err = %v, want ErrInvalidPayload", tc[0], tc[1], err)
		}
	}
}

func TestAttachmentCacheMetrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetricsWith(prometheus.NewRegistry(), "test")
	cache := newTestCache(m)

	cache.Lookup(ctx, "u1")
	cache.Record(ctx, "u1", "a1")
	cache.Lookup(ctx, "u1")
	cache.Lookup(ctx, "u1")

	if got := testutil.ToFloat64(m.ReuseLookups.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ReuseLookups.WithLabelValues("hit")); got != 2 {
		t.Errorf("hit = %v, want 2", got)
	}
}

type failingRepo struct{ err error }

func (r failingRepo) Get(context.Context, string) (*entity.ReusableAttachment, error) {
	return nil, r.err
}

func (r failingRepo) Save(context.Context, *entity.ReusableAttachment) error { return r.err }

func TestAttachmentCachePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("store down")
	cache := NewAttachmentCache(failingRepo{storeErr}, logger.NewNopLogger(), nil)

	if _, _, err := cache.Lookup(context.Background(), "u1"); !errors.Is(err, storeErr) {
		t.Errorf("Lookup err = %v, want %v", err, storeErr)
	}
	if err := cache.Record(context.Background(), "u1", "a1"); !errors.Is(err, storeErr) {
		t.Errorf("Record err = %v, want %v", err, storeErr)
	}
}
