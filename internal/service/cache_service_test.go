package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/models"
)

type failingCacheRepo struct{}

func (failingCacheRepo) Get(context.Context, string, interface{}) error {
	return errors.New("redis down")
}

func (failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis down")
}

func (failingCacheRepo) DeleteByPattern(context.Context, string) error {
	return errors.New("redis down")
}

func (failingCacheRepo) Counter(context.Context, string) (int64, error) {
	return 0, errors.New("redis down")
}

func (failingCacheRepo) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("redis down")
}

func TestCacheServiceDisabled(t *testing.T) {
	var nilService *CacheService
	assert.False(t, nilService.Enabled())
	assert.False(t, nilService.Get(context.Background(), "k", &dto.DutyScheduleView{}))
	nilService.Set(context.Background(), "k", 1)
	nilService.Invalidate(context.Background(), "k")

	repo := &cacheRepoStub{}
	svc := NewCacheService(repo, nil, 0, nil, false)
	assert.False(t, svc.Enabled())
	svc.Set(context.Background(), "k", &dto.DutyScheduleView{})
	assert.Empty(t, repo.values)
}

func TestCacheServiceRecordsLookups(t *testing.T) {
	metrics := NewMetricsService()
	repo := &cacheRepoStub{}
	svc := NewCacheService(repo, metrics, time.Minute, nil, true)

	var view dto.DutyScheduleView
	assert.False(t, svc.Get(context.Background(), "schedule:FIRST_TERM", &view))

	svc.Set(context.Background(), "schedule:FIRST_TERM", &dto.DutyScheduleView{Term: models.TermFirst})
	assert.True(t, svc.Get(context.Background(), "schedule:FIRST_TERM", &view))
	assert.Equal(t, models.TermFirst, view.Term)

	body := scrape(t, metrics)
	assert.Contains(t, body, `duty_schedule_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `duty_schedule_cache_lookups_total{result="miss"} 1`)
}

func TestCacheServiceSwallowsBackendErrors(t *testing.T) {
	svc := NewCacheService(failingCacheRepo{}, nil, time.Minute, nil, true)
	assert.False(t, svc.Get(context.Background(), "k", &dto.DutyScheduleView{}))
	_, ok := svc.Version(context.Background(), "v")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		svc.Set(context.Background(), "k", 1)
		svc.Invalidate(context.Background(), "k")
		svc.BumpVersion(context.Background(), "v")
	})
}

func TestCacheServiceVersion(t *testing.T) {
	repo := &cacheRepoStub{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	v, ok := svc.Version(context.Background(), "schedule-version:FIRST_TERM")
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)

	svc.BumpVersion(context.Background(), "schedule-version:FIRST_TERM")
	v, ok = svc.Version(context.Background(), "schedule-version:FIRST_TERM")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	_, ok = NewCacheService(repo, nil, time.Minute, nil, false).Version(context.Background(), "schedule-version:FIRST_TERM")
	assert.False(t, ok)
}
