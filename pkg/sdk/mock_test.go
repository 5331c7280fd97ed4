package livesearch

import (
	"context"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/alert"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
	"github.com/kailas-cloud/livesearch/internal/domain/search/result"
	galleryuc "github.com/kailas-cloud/livesearch/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/livesearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, id domain.Identity, req *request.Request) (result.Result, error)
	attrsFn  func(ctx context.Context, id domain.Identity) (result.Result, error)
	refineFn func(
		ctx context.Context, id domain.Identity, qctx *domain.QueryContext, ref request.Refine,
	) (result.Result, error)
}

func (m *mockSearchUC) ProductSearch(
	ctx context.Context, id domain.Identity, req *request.Request,
) (result.Result, error) {
	return m.searchFn(ctx, id, req)
}

func (m *mockSearchUC) AttributeMetadata(ctx context.Context, id domain.Identity) (result.Result, error) {
	return m.attrsFn(ctx, id)
}

func (m *mockSearchUC) RefineProduct(
	ctx context.Context, id domain.Identity, qctx *domain.QueryContext, ref request.Refine,
) (result.Result, error) {
	return m.refineFn(ctx, id, qctx, ref)
}

// --- galleryUseCase mock ---

type mockGalleryUC struct {
	resolveFn func(q galleryuc.Query) (galleryuc.Gallery, error)
}

func (m *mockGalleryUC) Resolve(q galleryuc.Query) (galleryuc.Gallery, error) {
	return m.resolveFn(q)
}

// --- subscriptionUseCase mock ---

type mockSubscriptionUC struct {
	subscribeFn func(ctx context.Context, sub alert.Subscription) (string, error)
}

func (m *mockSubscriptionUC) Subscribe(ctx context.Context, sub alert.Subscription) (string, error) {
	return m.subscribeFn(ctx, sub)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- promo source mock ---

type mockSource struct {
	getFn func(ctx context.Context, op, path string) ([]byte, error)
}

func (m *mockSource) Get(ctx context.Context, op, path string) ([]byte, error) {
	return m.getFn(ctx, op, path)
}
