package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sichrplace/discovery/internal/db"
	dbRedis "github.com/sichrplace/discovery/internal/db/redis"
	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
	catalogrepo "github.com/sichrplace/discovery/internal/repository/catalog"
	placesTransport "github.com/sichrplace/discovery/internal/transport/places"
	proximityuc "github.com/sichrplace/discovery/internal/usecase/proximity"
	searchuc "github.com/sichrplace/discovery/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultPlacesTimeout    = 10 * time.Second
)

// Client is the discovery SDK entry point. It embeds the same search and
// proximity services the HTTP server runs, for callers that want to skip
// the transport layer.
type Client struct {
	store        db.Store
	catalog      *catalogrepo.Repo
	searchSvc    *searchuc.Service
	proximitySvc *proximityuc.Service
}

// New creates a discovery Client, connects to the catalog store, and
// bootstraps the listing search index.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("discovery: database address required (use WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("discovery: database not ready: %w", err)
	}

	if err := catalogrepo.EnsureIndex(ctx, store); err != nil {
		store.Close()
		return nil, fmt.Errorf("discovery: bootstrap listing index: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: create redis store: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	catalogRepo := catalogrepo.New(store)

	var places proximityuc.Places = unavailablePlaces{}
	if cfg.placesBaseURL != "" {
		timeout := cfg.placesTimeout
		if timeout <= 0 {
			timeout = defaultPlacesTimeout
		}
		places = placesTransport.NewWithHTTPClient(cfg.placesBaseURL, &http.Client{
			Timeout: timeout,
		})
	}

	return &Client{
		store:        store,
		catalog:      catalogRepo,
		searchSvc:    searchuc.New(catalogRepo),
		proximitySvc: proximityuc.New(places),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks catalog store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search normalizes the raw filter input and returns one page of matching
// listings together with catalog-wide facets.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	result, err := c.searchSvc.Search(ctx, toRawParams(q))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromSearchResult(result), nil
}

// AddListings writes listings to the catalog as searchable hashes.
// Existing listings with the same ID are overwritten.
func (c *Client) AddListings(ctx context.Context, listings []Listing) error {
	if err := c.catalog.Store(ctx, toListingRecords(listings)); err != nil {
		return fmt.Errorf("add listings: %w", err)
	}
	return nil
}

// Nearby fetches candidates around the origin from the configured places
// provider and ranks them by great-circle distance. Requires WithPlaces.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, opts RankOptions) ([]RankedPlace, error) {
	ranked, err := c.proximitySvc.Nearby(ctx, geo.Coordinate{Lat: lat, Lng: lng}, toRankOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	return fromRanked(ranked), nil
}

// RankPlaces ranks caller-supplied candidates by great-circle distance
// from the origin without touching any provider. Candidates outside the
// radius or below the rating floor are dropped; ties on the rounded
// distance resolve by ID.
func RankPlaces(lat, lng float64, places []Place, opts RankOptions) ([]RankedPlace, error) {
	ranked, err := proximityuc.Rank(geo.Coordinate{Lat: lat, Lng: lng}, toCandidates(places), toRankOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("rank places: %w", err)
	}
	return fromRanked(ranked), nil
}

// ContextWithActor attaches a caller identity to the context. Searches
// made with an identified context are recorded in the audit stream.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return domain.ContextWithIdentity(ctx, actor)
}

// unavailablePlaces stands in when no places provider is configured.
type unavailablePlaces struct{}

func (unavailablePlaces) Nearby(context.Context, geo.Coordinate, float64) ([]place.Candidate, error) {
	return nil, domain.ErrPlacesUnavailable
}
