package docstore

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Apply evaluates q over docs in memory: filters, stable ordering (ties broken
// by key), cursor and limit. Backends without native query support use it.
func Apply(docs []Document, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if matches(d, q.Filters) {
			out = append(out, d)
		}
	}
	if len(q.Orders) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j], q.Orders)
		})
	}
	return Page(out, q.StartAfter, q.Limit)
}

// Page applies the StartAfter cursor and the limit to already ordered docs.
func Page(docs []Document, after string, limit int) []Document {
	if after != "" {
		for i, d := range docs {
			if d.Key == after {
				docs = docs[i+1:]
				break
			}
		}
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

func matches(d Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := d.Data[f.Field]
		if !ok {
			return false
		}
		if Compare(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

func less(a, b Document, orders []Order) bool {
	for _, o := range orders {
		c := Compare(a.Data[o.Field], b.Data[o.Field])
		if c == 0 {
			continue
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.Key < b.Key
}

// value ranks, lowest first (same ladder Firestore uses for mixed types)
const (
	rankNull = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

// Compare orders two field values. Values of different kinds compare by kind.
// RFC 3339 strings compare as times against times (JSON-backed stores keep
// timestamps as strings).
func Compare(a, b any) int {
	ra, va := normalize(a)
	rb, vb := normalize(b)

	if ra == rankString && rb == rankTime {
		if t, ok := parseTime(va.(string)); ok {
			ra, va = rankTime, t
		}
	}
	if rb == rankString && ra == rankTime {
		if t, ok := parseTime(vb.(string)); ok {
			rb, vb = rankTime, t
		}
	}
	if ra == rankString && rb == rankString {
		ta, okA := parseTime(va.(string))
		tb, okB := parseTime(vb.(string))
		if okA && okB {
			ra, va, rb, vb = rankTime, ta, rankTime, tb
		}
	}

	if ra != rb {
		return cmpInt(ra, rb)
	}

	switch ra {
	case rankNull:
		return 0
	case rankBool:
		x, y := va.(bool), vb.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case rankNumber:
		x, y := va.(float64), vb.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case rankTime:
		return va.(time.Time).Compare(vb.(time.Time))
	case rankString:
		return strings.Compare(va.(string), vb.(string))
	}
	// arrays and maps: only equality is meaningful
	ja, _ := json.Marshal(va)
	jb, _ := json.Marshal(vb)
	return strings.Compare(string(ja), string(jb))
}

func normalize(v any) (int, any) {
	switch t := v.(type) {
	case nil:
		return rankNull, nil
	case bool:
		return rankBool, t
	case int:
		return rankNumber, float64(t)
	case int8:
		return rankNumber, float64(t)
	case int16:
		return rankNumber, float64(t)
	case int32:
		return rankNumber, float64(t)
	case int64:
		return rankNumber, float64(t)
	case uint:
		return rankNumber, float64(t)
	case uint32:
		return rankNumber, float64(t)
	case uint64:
		return rankNumber, float64(t)
	case float32:
		return rankNumber, float64(t)
	case float64:
		return rankNumber, t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return rankString, t.String()
		}
		return rankNumber, f
	case time.Time:
		return rankTime, t
	case *time.Time:
		if t == nil {
			return rankNull, nil
		}
		return rankTime, *t
	case string:
		return rankString, t
	}
	return rankOther, v
}

func parseTime(s string) (time.Time, bool) {
	if len(s) < len("2006-01-02T15:04:05Z") || s[4] != '-' || s[10] != 'T' {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
