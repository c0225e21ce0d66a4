package mlservice

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"styleMarket/domain"
)

type payloadKind int

const (
	payloadInvalid payloadKind = iota
	payloadList
	payloadWrapped
)

// payload is the decoded top-level shape of a recommender response: a bare
// list of entries, or an object carrying the list under "items".
type payload struct {
	kind    payloadKind
	entries []json.RawMessage
}

// idKeys are tried in order; the first present, non-null key names the product.
var idKeys = []string{"product_id", "productId", "id"}

func decodePayload(body []byte) payload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return payload{kind: payloadInvalid}
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return payload{kind: payloadInvalid}
		}
		return payload{kind: payloadList, entries: entries}

	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return payload{kind: payloadInvalid}
		}
		items := bytes.TrimSpace(wrapper["items"])
		if len(items) == 0 || items[0] != '[' {
			return payload{kind: payloadInvalid}
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(items, &entries); err != nil {
			return payload{kind: payloadInvalid}
		}
		return payload{kind: payloadWrapped, entries: entries}
	}

	return payload{kind: payloadInvalid}
}

// Normalize reduces a recommender response body to deduplicated
// (product id, score) pairs in first-seen order. Entries without a usable
// product id are dropped; a missing or non-numeric score becomes nil.
func Normalize(body []byte) ([]domain.RemoteRecommendation, error) {
	p := decodePayload(body)
	if p.kind == payloadInvalid {
		return nil, ErrBadResponse
	}

	seen := make(map[string]struct{}, len(p.entries))
	out := make([]domain.RemoteRecommendation, 0, len(p.entries))
	for _, raw := range p.entries {
		rec, ok := normalizeEntry(raw)
		if !ok {
			continue
		}
		if _, dup := seen[rec.ProductID]; dup {
			continue
		}
		seen[rec.ProductID] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

func normalizeEntry(raw json.RawMessage) (domain.RemoteRecommendation, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.RemoteRecommendation{}, false
	}

	var id string
	for _, key := range idKeys {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}
		id, ok = productID(value)
		if !ok {
			return domain.RemoteRecommendation{}, false
		}
		break
	}
	if id == "" {
		return domain.RemoteRecommendation{}, false
	}

	return domain.RemoteRecommendation{ProductID: id, Score: score(fields["score"])}, true
}

// productID accepts a non-empty string or a non-zero number, the latter in
// its literal form.
func productID(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	f, err := n.Float64()
	if err != nil || f == 0 {
		return "", false
	}
	return n.String(), true
}

func score(raw json.RawMessage) *float64 {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
