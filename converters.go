package discovery

import (
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/place"
	"github.com/sichrplace/discovery/internal/domain/search/page"
	"github.com/sichrplace/discovery/internal/domain/search/params"
	proximityuc "github.com/sichrplace/discovery/internal/usecase/proximity"
)

func toRawParams(q SearchQuery) params.Raw {
	return params.Raw{
		Query:        q.Query,
		Location:     q.Location,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Bedrooms:     q.Bedrooms,
		Bathrooms:    q.Bathrooms,
		PropertyType: q.PropertyType,
		Amenities:    q.Amenities,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
		Page:         q.Page,
		Limit:        q.Limit,
	}
}

func fromSearchResult(result *page.Result) *SearchPage {
	listings := make([]Listing, 0, len(result.Listings))
	for i := range result.Listings {
		listings = append(listings, fromListingRecord(&result.Listings[i]))
	}

	var facets Facets
	if result.Facets.PriceRange != nil {
		facets.PriceRange = &PriceRange{
			Min: result.Facets.PriceRange.Min,
			Max: result.Facets.PriceRange.Max,
		}
	}
	facets.PropertyTypes = result.Facets.PropertyTypes

	return &SearchPage{
		Listings: listings,
		Page:     result.Page,
		PageSize: result.PageSize,
		Count:    result.Count,
		HasMore:  result.HasMore,
		Facets:   facets,
		Applied:  fromAppliedParams(&result.Applied),
	}
}

func fromListingRecord(rec *listing.Record) Listing {
	return Listing{
		ID:           rec.ID(),
		Title:        rec.Title(),
		Description:  rec.Description(),
		Price:        rec.Price(),
		Bedrooms:     rec.Bedrooms(),
		Bathrooms:    rec.Bathrooms(),
		PropertyType: rec.PropertyType(),
		Amenities:    rec.Amenities(),
		Address:      rec.Address(),
		City:         rec.City(),
		Region:       rec.Region(),
		Status:       rec.Status(),
		CreatedAt:    rec.CreatedAt(),
	}
}

func toListingRecords(listings []Listing) []listing.Record {
	out := make([]listing.Record, 0, len(listings))
	for _, l := range listings {
		out = append(out, listing.Reconstruct(
			l.ID, l.Title, l.Description,
			l.Price, l.Bedrooms, l.Bathrooms,
			l.PropertyType, l.Amenities,
			l.Address, l.City, l.Region, l.Status,
			l.CreatedAt,
		))
	}
	return out
}

func fromAppliedParams(p *params.SearchParameters) AppliedFilters {
	return AppliedFilters{
		Query:        p.Query(),
		Location:     p.Location(),
		MinPrice:     p.MinPrice(),
		MaxPrice:     p.MaxPrice(),
		Bedrooms:     p.Bedrooms().String(),
		Bathrooms:    p.Bathrooms().String(),
		PropertyType: p.PropertyType(),
		Amenities:    p.Amenities(),
		SortBy:       string(p.SortField()),
		SortOrder:    string(p.Direction()),
		Page:         p.Page(),
		Limit:        p.PageSize(),
	}
}

func toCandidates(places []Place) []place.Candidate {
	out := make([]place.Candidate, 0, len(places))
	for _, pl := range places {
		out = append(out, place.Candidate{
			ID:         pl.ID,
			Name:       pl.Name,
			Location:   geo.Coordinate{Lat: pl.Lat, Lng: pl.Lng},
			Categories: pl.Categories,
			Rating:     pl.Rating,
			OpenNow:    pl.OpenNow,
		})
	}
	return out
}

func fromRanked(ranked []place.Ranked) []RankedPlace {
	out := make([]RankedPlace, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedPlace{
			Place: Place{
				ID:         r.ID,
				Name:       r.Name,
				Lat:        r.Location.Lat,
				Lng:        r.Location.Lng,
				Categories: r.Categories,
				Rating:     r.Rating,
				OpenNow:    r.OpenNow,
			},
			DistanceKm: r.DistanceKm,
		})
	}
	return out
}

func toRankOptions(opts RankOptions) proximityuc.RankOptions {
	out := proximityuc.RankOptions{
		MinRating: opts.MinRating,
		Limit:     opts.Limit,
	}
	if opts.RadiusKm > 0 {
		out.RadiusKm = &opts.RadiusKm
	}
	return out
}
