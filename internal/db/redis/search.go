package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/sichrplace/discovery/internal/db"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// maxDistinctValues caps the number of groups fetched by Distinct.
const maxDistinctValues = 100

// Search runs a paginated, sorted listing query via FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.ListingQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	args := []string{q.IndexName, renderPlan(q.Plan)}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	dir := "DESC"
	if q.Plan.Sort.Ascending {
		dir = "ASC"
	}
	if q.Plan.Sort.Field != "" {
		args = append(args, "SORTBY", q.Plan.Sort.Field, dir)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Plan.Offset), strconv.Itoa(q.Plan.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// MinMax computes a min/max aggregate over a field, scoped by predicates.
// Returns nil when the scoped set is empty.
func (s *Store) MinMax(
	ctx context.Context, index, field string, scope []plan.Predicate,
) (*db.MinMax, error) {
	args := []string{
		index, renderScope(scope),
		"GROUPBY", "0",
		"REDUCE", "MIN", "1", "@" + field, "AS", "min_val",
		"REDUCE", "MAX", "1", "@" + field, "AS", "max_val",
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	rows := parseAggregateRows(raw)
	if len(rows) == 0 {
		return nil, nil
	}

	minVal, okMin := parseAggregateFloat(rows[0]["min_val"])
	maxVal, okMax := parseAggregateFloat(rows[0]["max_val"])
	if !okMin || !okMax {
		// Empty scoped set: reducers yield no usable values.
		return nil, nil
	}

	return &db.MinMax{Min: minVal, Max: maxVal}, nil
}

// Distinct returns the distinct values of a field, scoped by predicates,
// sorted lexicographically for determinism.
func (s *Store) Distinct(
	ctx context.Context, index, field string, scope []plan.Predicate,
) ([]string, error) {
	args := []string{
		index, renderScope(scope),
		"GROUPBY", "1", "@" + field,
		"LIMIT", "0", strconv.Itoa(maxDistinctValues),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "no such index") || isRedisErr(err, "unknown index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	var values []string
	for _, row := range parseAggregateRows(raw) {
		if v := row[field]; v != "" {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}

// --- Result parsing ---

func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// parseAggregateRows flattens an FT.AGGREGATE reply into field maps.
// Reply shape: [nGroups, row1, row2, ...] where each row is a flat
// name/value array.
func parseAggregateRows(raw []rueidis.RedisMessage) []map[string]string {
	if len(raw) < 2 {
		return nil
	}
	rows := make([]map[string]string, 0, len(raw)-1)
	for _, msg := range raw[1:] {
		pairs, err := msg.ToArray()
		if err != nil {
			continue
		}
		rows = append(rows, parseFieldPairs(pairs))
	}
	return rows
}

func parseAggregateFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Plan rendering ---

// renderPlan translates a QueryPlan into an FT.SEARCH query string. All
// caller-supplied values pass through the escapers below; structure comes
// only from the plan itself.
func renderPlan(p plan.QueryPlan) string {
	var parts []string

	for _, pred := range p.Must {
		if rendered := renderPredicate(pred); rendered != "" {
			parts = append(parts, rendered)
		}
	}

	for _, group := range p.Any {
		if rendered := renderGroup(group); rendered != "" {
			parts = append(parts, rendered)
		}
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

// renderScope renders a bare predicate list (facet aggregate scope).
func renderScope(preds []plan.Predicate) string {
	var parts []string
	for _, pred := range preds {
		if rendered := renderPredicate(pred); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func renderGroup(group plan.Group) string {
	if len(group) == 0 {
		return ""
	}
	parts := make([]string, 0, len(group))
	for _, pred := range group {
		if rendered := renderPredicate(pred); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func renderPredicate(pred plan.Predicate) string {
	switch pred.Op {
	case plan.OpEquals:
		if num, ok := numericValue(pred.Value); ok {
			return fmt.Sprintf("@%s:[%s %s]", pred.Field, formatNum(num), formatNum(num))
		}
		return renderTag(pred.Field, stringValue(pred.Value))

	case plan.OpContainsElement:
		return renderTag(pred.Field, stringValue(pred.Value))

	case plan.OpContainsSubstring:
		return renderSubstring(pred.Field, stringValue(pred.Value))

	case plan.OpGreaterOrEqual:
		if num, ok := numericValue(pred.Value); ok {
			return fmt.Sprintf("@%s:[%s +inf]", pred.Field, formatNum(num))
		}

	case plan.OpLessOrEqual:
		if num, ok := numericValue(pred.Value); ok {
			return fmt.Sprintf("@%s:[-inf %s]", pred.Field, formatNum(num))
		}
	}
	return ""
}

func renderTag(field, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("@%s:{%s}", field, tagEscaper.Replace(value))
}

// renderSubstring renders a containment test over a TEXT field: each token
// of the value becomes an infix wildcard term, all required within the
// field.
func renderSubstring(field, value string) string {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return ""
	}
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = "*" + textEscaper.Replace(tok) + "*"
	}
	return fmt.Sprintf("@%s:(%s)", field, strings.Join(terms, " "))
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// --- Escaping ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
)
