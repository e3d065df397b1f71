package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Consecutive guards with the same return can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// upstreamCalls keeps outbound HTTP inside internal/infra/nasaapi, which owns
// timeouts, error classification and api_key redaction.
func upstreamCalls(m dsl.Matcher) {
	m.Match(`http.Get($*_)`, `http.Post($*_)`, `http.Head($*_)`, `http.DefaultClient.$_($*_)`).
		Where(!m.File().PkgPath.Matches(`/internal/infra/nasaapi$`)).
		Report(`outbound HTTP must go through nasaapi.Client`)
}

// gjsonAccess flags Array() on results that may be scalars; arrayOf guards it.
func gjsonAccess(m dsl.Matcher) {
	m.Import(`github.com/tidwall/gjson`)
	m.Match(`$r.Get($k).Array()`).
		Where(m["r"].Type.Is(`gjson.Result`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`Array() wraps scalars in a one-element slice; use arrayOf($r.Get($k))`)
}

// stdlibErrors catches errors.Is/As from the standard library, which cannot see
// marks added with github.com/cockroachdb/errors.
func stdlibErrors(m dsl.Matcher) {
	m.Match(`errors.Is($*_)`, `errors.As($*_)`).
		Where(m.File().Imports(`errors`)).
		Report(`import github.com/cockroachdb/errors; stdlib errors.Is does not see errors.Mark`)
}
