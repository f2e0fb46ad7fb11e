package plan

import (
	"testing"

	"github.com/sichrplace/discovery/internal/domain/search/params"
)

func normalize(t *testing.T, raw params.Raw) *params.SearchParameters {
	t.Helper()
	p, err := params.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return &p
}

func TestBuild_EmptyInputPlansActiveBrowse(t *testing.T) {
	qp := Build(normalize(t, params.Raw{}))

	if len(qp.Must) != 1 {
		t.Fatalf("must predicates = %d, want 1", len(qp.Must))
	}
	if len(qp.Any) != 0 {
		t.Fatalf("or groups = %d, want 0", len(qp.Any))
	}
	p := qp.Must[0]
	if p.Field != FieldStatus || p.Op != OpEquals || p.Value != "active" {
		t.Errorf("mandatory predicate = %+v, want status equals active", p)
	}
}

func TestBuild_ActivePredicateAlwaysFirst(t *testing.T) {
	qp := Build(normalize(t, params.Raw{MinPrice: "500", PropertyType: "apartment"}))
	if qp.Must[0].Field != FieldStatus {
		t.Fatalf("first predicate = %+v, want status", qp.Must[0])
	}
}

func TestBuild_PriceBounds(t *testing.T) {
	qp := Build(normalize(t, params.Raw{MinPrice: "500", MaxPrice: "900"}))

	var sawMin, sawMax bool
	for _, p := range qp.Must {
		if p.Field == FieldPrice && p.Op == OpGreaterOrEqual && p.Value == 500.0 {
			sawMin = true
		}
		if p.Field == FieldPrice && p.Op == OpLessOrEqual && p.Value == 900.0 {
			sawMax = true
		}
	}
	if !sawMin || !sawMax {
		t.Errorf("price predicates missing: %+v", qp.Must)
	}
}

func TestBuild_OrMoreCountBecomesLowerBound(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Bedrooms: "5+"}))
	found := false
	for _, p := range qp.Must {
		if p.Field == FieldBedrooms {
			found = true
			if p.Op != OpGreaterOrEqual || p.Value != 5.0 {
				t.Errorf("bedrooms predicate = %+v, want greaterOrEqual 5", p)
			}
		}
	}
	if !found {
		t.Fatal("no bedrooms predicate")
	}
}

func TestBuild_ExactCount(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Bathrooms: "2"}))
	for _, p := range qp.Must {
		if p.Field == FieldBathrooms {
			if p.Op != OpEquals || p.Value != 2.0 {
				t.Errorf("bathrooms predicate = %+v, want equals 2", p)
			}
			return
		}
	}
	t.Fatal("no bathrooms predicate")
}

func TestBuild_TextQueryBecomesOrGroup(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Query: "Balcony View"}))
	if len(qp.Any) != 1 {
		t.Fatalf("or groups = %d, want 1", len(qp.Any))
	}
	g := qp.Any[0]
	if len(g) != 2 {
		t.Fatalf("group size = %d, want 2", len(g))
	}
	if g[0].Field != FieldTitle || g[1].Field != FieldDescription {
		t.Errorf("group fields = %s/%s", g[0].Field, g[1].Field)
	}
	for _, p := range g {
		if p.Op != OpContainsSubstring || p.Value != "balcony view" {
			t.Errorf("predicate = %+v, want folded containsSubstring", p)
		}
	}
}

func TestBuild_LocationBecomesOrGroup(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Location: "Mitte"}))
	if len(qp.Any) != 1 {
		t.Fatalf("or groups = %d, want 1", len(qp.Any))
	}
	fields := map[string]bool{}
	for _, p := range qp.Any[0] {
		fields[p.Field] = true
	}
	for _, f := range []string{FieldAddress, FieldCity, FieldRegion} {
		if !fields[f] {
			t.Errorf("location group missing %s", f)
		}
	}
}

func TestBuild_AmenitiesAndSemantics(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Amenities: "wifi,balcony"}))
	var got []string
	for _, p := range qp.Must {
		if p.Field == FieldAmenities {
			if p.Op != OpContainsElement {
				t.Errorf("amenity predicate op = %s", p.Op)
			}
			got = append(got, p.Value.(string))
		}
	}
	if len(got) != 2 || got[0] != "wifi" || got[1] != "balcony" {
		t.Errorf("amenity predicates = %v", got)
	}
}

func TestBuild_PaginationWindow(t *testing.T) {
	qp := Build(normalize(t, params.Raw{Page: "3", Limit: "25"}))
	if qp.Offset != 50 {
		t.Errorf("offset = %d, want 50", qp.Offset)
	}
	if qp.Limit != 25 {
		t.Errorf("limit = %d, want 25", qp.Limit)
	}
}

func TestBuild_SortMapping(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder string
		wantField         string
		wantAsc           bool
	}{
		{"", "", FieldCreatedAt, false},
		{"price", "ascending", FieldPrice, true},
		{"bedrooms", "descending", FieldBedrooms, false},
		{"bathrooms", "ascending", FieldBathrooms, true},
		{"title", "ascending", FieldTitle, true},
		{"unknownField", "ascending", FieldCreatedAt, true},
	}
	for _, c := range cases {
		qp := Build(normalize(t, params.Raw{SortBy: c.sortBy, SortOrder: c.sortOrder}))
		if qp.Sort.Field != c.wantField || qp.Sort.Ascending != c.wantAsc {
			t.Errorf("sortBy=%q: got %+v, want %s asc=%v", c.sortBy, qp.Sort, c.wantField, c.wantAsc)
		}
	}
}
