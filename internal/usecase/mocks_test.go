package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/risk-map-service/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetMapSnapshot(ctx context.Context, loadID, selection string) ([]byte, error) {
	args := m.Called(ctx, loadID, selection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetMapSnapshot(ctx context.Context, loadID, selection string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, loadID, selection, data, ttl)
	return args.Error(0)
}

// MockEventPublisher is a mock of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishMapEvent(ctx context.Context, event domain.MapEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockBoundarySource is a mock of BoundarySource
type MockBoundarySource struct {
	mock.Mock
}

func (m *MockBoundarySource) LoadBoundaries(ctx context.Context) ([]*domain.BoundaryFeature, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BoundaryFeature), args.Error(1)
}

// MockRiskTableSource is a mock of RiskTableSource
type MockRiskTableSource struct {
	mock.Mock
}

func (m *MockRiskTableSource) LoadRiskTable(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// recordingRenderer counts restyle calls and keeps the last style per feature
type recordingRenderer struct {
	features   []*domain.BoundaryFeature
	styles     map[*domain.BoundaryFeature]domain.StyleProps
	restyleAll int
	setStyle   int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{styles: make(map[*domain.BoundaryFeature]domain.StyleProps)}
}

func (r *recordingRenderer) Load(features []*domain.BoundaryFeature) {
	r.features = features
	for _, f := range features {
		r.styles[f] = r.Style(f)
	}
}

func (r *recordingRenderer) Style(f *domain.BoundaryFeature) domain.StyleProps {
	return domain.StyleFor(f.RiskLevel())
}

func (r *recordingRenderer) SetStyle(f *domain.BoundaryFeature) {
	r.setStyle++
	r.styles[f] = r.Style(f)
}

func (r *recordingRenderer) RestyleAll() {
	r.restyleAll++
	for _, f := range r.features {
		r.styles[f] = r.Style(f)
	}
}

func (r *recordingRenderer) Features() []*domain.BoundaryFeature {
	return r.features
}

func (r *recordingRenderer) Export() ([]byte, error) {
	return []byte(`{"type":"FeatureCollection","features":[]}`), nil
}
