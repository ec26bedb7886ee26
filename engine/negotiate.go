package engine

import (
	"sort"
	"strconv"
	"strings"
)

// weightedRange is one entry of any Accept-* header: a token (possibly
// wildcarded) with its q value and a specificity rank used as a tiebreak.
type weightedRange struct {
	token string
	q     float64
	rank  int // not set by parseWeightedList; Accept ranks specificity via wildcardRank
}

// parseWeightedList parses a generic "#( token [ ;q=value ] )" header value
// (Accept-Language, Accept-Charset, Accept-Encoding all follow this shape).
// A missing header is treated as the wildcard "*" at q=1.0.
func parseWeightedList(header string) []weightedRange {
	header = strings.TrimSpace(header)
	if header == "" {
		return []weightedRange{{token: "*", q: 1.0}}
	}
	var out []weightedRange
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token, q := splitQ(part)
		out = append(out, weightedRange{token: strings.ToLower(token), q: q})
	}
	if len(out) == 0 {
		return []weightedRange{{token: "*", q: 1.0}}
	}
	return out
}

// splitQ splits "token;q=0.5;foo=bar" into ("token", 0.5), defaulting q to
// 1.0 if absent or unparseable.
func splitQ(part string) (string, float64) {
	segs := strings.Split(part, ";")
	token := strings.TrimSpace(segs[0])
	q := 1.0
	for _, seg := range segs[1:] {
		seg = strings.TrimSpace(seg)
		if !strings.HasPrefix(seg, "q=") && !strings.HasPrefix(seg, "Q=") {
			continue
		}
		if v, err := strconv.ParseFloat(seg[2:], 64); err == nil {
			q = v
		}
	}
	return token, q
}

// selectToken picks the best offered token against a parsed Accept-*
// header: highest q first, then the first offered token in controller
// order among ties. Wildcard "*" in the header matches anything not
// explicitly listed. A 0-valued explicit match excludes that token.
func selectToken(header string, offered []string) (string, bool) {
	if len(offered) == 0 {
		return "", false
	}
	ranges := parseWeightedList(header)

	explicit := make(map[string]float64, len(ranges))
	var wildcardQ = -1.0
	for _, r := range ranges {
		if r.token == "*" {
			wildcardQ = r.q
			continue
		}
		explicit[r.token] = r.q
	}

	bestIdx := -1
	bestQ := -1.0
	for i, off := range offered {
		lower := strings.ToLower(off)
		q, has := explicit[lower]
		if !has {
			if wildcardQ < 0 {
				continue // not mentioned and no wildcard: not acceptable
			}
			q = wildcardQ
		}
		if q <= 0 {
			continue
		}
		if q > bestQ {
			bestQ = q
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return "", false
	}
	return offered[bestIdx], true
}

// mediaRange is one parsed entry of an Accept header.
type mediaRange struct {
	typ, subtype string
	q            float64
	params       map[string]string
}

func wildcardRank(typ, subtype string) int {
	switch {
	case typ == "*" && subtype == "*":
		return 2
	case subtype == "*":
		return 1
	default:
		return 0
	}
}

// parseAccept parses the full media-range grammar including the `q`
// parameter; missing Accept is treated as `*/*` at q=1.0.
func parseAccept(header string) []mediaRange {
	header = strings.TrimSpace(header)
	if header == "" {
		return []mediaRange{{typ: "*", subtype: "*", q: 1.0}}
	}
	var out []mediaRange
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segs := strings.Split(part, ";")
		typeSub := strings.TrimSpace(segs[0])
		slash := strings.IndexByte(typeSub, '/')
		if slash < 0 {
			continue
		}
		mr := mediaRange{
			typ:     strings.ToLower(strings.TrimSpace(typeSub[:slash])),
			subtype: strings.ToLower(strings.TrimSpace(typeSub[slash+1:])),
			q:       1.0,
			params:  map[string]string{},
		}
		for _, seg := range segs[1:] {
			seg = strings.TrimSpace(seg)
			eq := strings.IndexByte(seg, '=')
			if eq < 0 {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(seg[:eq]))
			val := strings.TrimSpace(seg[eq+1:])
			if key == "q" {
				if v, err := strconv.ParseFloat(val, 64); err == nil {
					mr.q = v
				}
			} else {
				mr.params[key] = val
			}
		}
		out = append(out, mr)
	}
	if len(out) == 0 {
		return []mediaRange{{typ: "*", subtype: "*", q: 1.0}}
	}
	return out
}

func matchMedia(mr mediaRange, typ, subtype string) bool {
	return (mr.typ == "*" || mr.typ == typ) && (mr.subtype == "*" || mr.subtype == subtype)
}

// SelectMediaType negotiates a Content-Type against the Accept header.
// Selection order: highest q, then most-specific (fewest wildcards), then
// first offered by the controller, matching spec.md §4.2's Accept rule.
func SelectMediaType(acceptHeader string, offered []string) (string, bool) {
	if len(offered) == 0 {
		return "", false
	}
	ranges := parseAccept(acceptHeader)

	type candidate struct {
		idx  int
		q    float64
		rank int
	}
	var cands []candidate
	for i, off := range offered {
		slash := strings.IndexByte(off, '/')
		typ, sub := off, ""
		if slash >= 0 {
			typ, sub = off[:slash], off[slash+1:]
		}
		typ, sub = strings.ToLower(typ), strings.ToLower(sub)
		bestQ := -1.0
		bestRank := 3
		for _, mr := range ranges {
			if !matchMedia(mr, typ, sub) {
				continue
			}
			rank := wildcardRank(mr.typ, mr.subtype)
			if mr.q > bestQ || (mr.q == bestQ && rank < bestRank) {
				bestQ = mr.q
				bestRank = rank
			}
		}
		if bestQ > 0 {
			cands = append(cands, candidate{idx: i, q: bestQ, rank: bestRank})
		}
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].q != cands[j].q {
			return cands[i].q > cands[j].q
		}
		if cands[i].rank != cands[j].rank {
			return cands[i].rank < cands[j].rank
		}
		return cands[i].idx < cands[j].idx
	})
	return offered[cands[0].idx], true
}

// SelectLanguage negotiates Accept-Language against offered language tags.
func SelectLanguage(header string, offered []string) (string, bool) {
	return selectToken(header, offered)
}

// SelectCharset negotiates Accept-Charset against offered charsets. An
// offer of exactly [NoCharset] skips negotiation and yields NoCharset.
func SelectCharset(header string, offered []string) (string, bool) {
	if len(offered) == 1 && offered[0] == NoCharset {
		return NoCharset, true
	}
	return selectToken(header, offered)
}

// SelectEncoding negotiates Accept-Encoding against offered content
// encodings. "identity" is always implicitly acceptable unless explicitly
// excluded with q=0, per RFC 7231 §5.3.4.
func SelectEncoding(header string, offered []string) (string, bool) {
	if selected, ok := selectToken(header, offered); ok {
		return selected, true
	}
	identityQ, wildcardQ := -1.0, -1.0
	for _, r := range parseWeightedList(header) {
		switch r.token {
		case "identity":
			identityQ = r.q
		case "*":
			wildcardQ = r.q
		}
	}
	if identityQ == 0 || (identityQ < 0 && wildcardQ == 0) {
		return "", false // identity explicitly excluded
	}
	for _, off := range offered {
		if strings.EqualFold(off, "identity") {
			return off, true
		}
	}
	return "", false
}
