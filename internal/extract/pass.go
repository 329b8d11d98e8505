package extract

import (
	"strconv"

	"github.com/goliatone/go-formtemplate/pkg/model"
)

// pass holds the mutable state of one structure extraction. It is created per
// call and threaded through the block, wrapper and parameter stages.
type pass struct {
	opts     Options
	dict     model.Dictionary
	excluded map[string]struct{}
	seen     map[string]struct{}
	counters map[string]int
	used     map[string]struct{}
	aliases  model.AliasMap
}

func newPass(opts Options, dict model.Dictionary, excluded []string) *pass {
	p := &pass{
		opts:     opts,
		dict:     dict,
		excluded: make(map[string]struct{}, len(excluded)),
		seen:     make(map[string]struct{}),
		counters: make(map[string]int),
		used:     make(map[string]struct{}),
		aliases:  make(model.AliasMap),
	}
	for _, code := range excluded {
		p.excluded[code] = struct{}{}
	}
	return p
}

// claimBlock reports whether a block code should be surfaced and marks it as
// seen. Missing, excluded and repeated codes are refused.
func (p *pass) claimBlock(code string) bool {
	if code == "" {
		return false
	}
	if _, skip := p.excluded[code]; skip {
		return false
	}
	if _, dup := p.seen[code]; dup {
		return false
	}
	p.seen[code] = struct{}{}
	return true
}

// claimCode assigns the final code for the next occurrence of raw and returns
// the suffix applied ("" for the first occurrence). The N-th occurrence is
// named raw_N; if that name was already taken verbatim by another raw code
// the counter keeps advancing until a free name is found.
func (p *pass) claimCode(raw string) (code, suffix string) {
	for {
		p.counters[raw]++
		n := p.counters[raw]
		code, suffix = raw, ""
		if n > 1 {
			suffix = "_" + strconv.Itoa(n)
			code = raw + suffix
		}
		if _, taken := p.used[code]; !taken {
			p.used[code] = struct{}{}
			return code, suffix
		}
	}
}
