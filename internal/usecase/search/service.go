package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/page"
	"github.com/sichrplace/discovery/internal/domain/search/params"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
	"github.com/sichrplace/discovery/internal/logger"
	"github.com/sichrplace/discovery/internal/metrics"
)

// defaultAuditTimeout bounds the detached audit write.
const defaultAuditTimeout = 5 * time.Second

// Service handles listing discovery: filter normalization, plan execution,
// catalog-wide facets, and the audit trail.
type Service struct {
	catalog      Catalog
	auditTimeout time.Duration
}

// New creates a search service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog, auditTimeout: defaultAuditTimeout}
}

// Search normalizes the raw filter input, executes the query plan, and
// returns the matching page together with catalog-wide facets.
//
// The page query and both facet queries run in parallel. Facets always
// describe the whole active catalog, not the filtered subset, so the
// client can render full filter ranges next to any result page.
func (s *Service) Search(ctx context.Context, raw params.Raw) (*page.Result, error) {
	start := time.Now()

	p, err := params.Normalize(raw)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	qp := plan.Build(&p)
	scope := []plan.Predicate{plan.ActiveOnly()}

	var (
		records    []listing.Record
		priceRange *page.PriceRange
		propTypes  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var qerr error
		records, _, qerr = s.catalog.Query(gctx, qp)
		return qerr
	})
	g.Go(func() error {
		var ferr error
		priceRange, ferr = s.catalog.PriceRange(gctx, scope)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		propTypes, ferr = s.catalog.PropertyTypes(gctx, scope)
		return ferr
	})

	if err := g.Wait(); err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result := &page.Result{
		Listings: records,
		Page:     p.Page(),
		PageSize: p.PageSize(),
		Count:    len(records),
		// A full page signals more results may follow; an exactly-full
		// final page therefore reports true.
		HasMore: len(records) == p.PageSize(),
		Facets: page.Facets{
			PriceRange:    priceRange,
			PropertyTypes: propTypes,
		},
		Applied: p,
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResultCount.Observe(float64(len(records)))

	s.audit(ctx, &p, len(records))

	return result, nil
}

// audit writes a search audit record when a caller identity is present.
// The write is fire and forget: it runs on a detached context with its
// own timeout and never affects the search response.
func (s *Service) audit(ctx context.Context, p *params.SearchParameters, count int) {
	actor, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return
	}

	rec := domain.AuditRecord{
		ID:          uuid.NewString(),
		Actor:       actor,
		Query:       p.Query(),
		Location:    p.Location(),
		ResultCount: count,
		UnixMilli:   time.Now().UnixMilli(),
	}

	log := logger.FromContext(ctx)
	detached := context.WithoutCancel(ctx)

	go func() {
		actx, cancel := context.WithTimeout(detached, s.auditTimeout)
		defer cancel()

		if err := s.catalog.AppendAudit(actx, rec); err != nil {
			metrics.AuditWriteFailuresTotal.Inc()
			log.Warn("audit write failed",
				zap.String("audit_id", rec.ID),
				zap.Error(err))
		}
	}()
}
