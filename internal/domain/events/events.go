// Package events models the storefront analytics collaborator as a set of
// optional capabilities. A publisher implements any subset of the hook
// interfaces; unimplemented hooks are skipped.
package events

import (
	"encoding/json"

	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	searchsort "github.com/kailas-cloud/livesearch/internal/domain/search/sort"
)

// Publisher is any value implementing zero or more of the hook interfaces below.
type Publisher any

// SearchRequestSentHook is called after the search input is recorded.
type SearchRequestSentHook interface {
	SearchRequestSent(unitID string)
}

// SearchResponseReceivedHook is called after the results are recorded.
type SearchResponseReceivedHook interface {
	SearchResponseReceived(unitID string)
}

// CategoryResultsViewHook is called for category browsing responses.
type CategoryResultsViewHook interface {
	CategoryResultsView(unitID string)
}

// SearchResultsViewHook is called for phrase search responses.
type SearchResultsViewHook interface {
	SearchResultsView(unitID string)
}

// SearchInput is the recorded search intent.
type SearchInput struct {
	Phrase      string
	Filter      []filter.Clause
	PageSize    int
	CurrentPage int
	Sort        []searchsort.Directive
}

// InputRecorder receives the search input before dispatch.
type InputRecorder interface {
	RecordSearchInput(unitID, searchRequestID string, in SearchInput)
}

// ResultsRecorder receives the raw data.productSearch payload after parsing.
type ResultsRecorder interface {
	RecordSearchResults(unitID, searchRequestID string, results json.RawMessage)
}

// Emitter dispatches lifecycle events to an optional publisher.
// The zero value and an Emitter over nil publish nothing. Hook panics are
// swallowed.
type Emitter struct {
	pub Publisher
}

// NewEmitter wraps pub. pub may be nil.
func NewEmitter(pub Publisher) Emitter {
	return Emitter{pub: pub}
}

// SearchInput records the input and announces the request.
func (e Emitter) SearchInput(unitID, searchRequestID string, in SearchInput) {
	if r, ok := e.pub.(InputRecorder); ok {
		guard(func() { r.RecordSearchInput(unitID, searchRequestID, in) })
	}
	if h, ok := e.pub.(SearchRequestSentHook); ok {
		guard(func() { h.SearchRequestSent(unitID) })
	}
}

// SearchResults records the results, announces the response, then announces
// the view matching categorySearch.
func (e Emitter) SearchResults(unitID, searchRequestID string, results json.RawMessage, categorySearch bool) {
	if r, ok := e.pub.(ResultsRecorder); ok {
		guard(func() { r.RecordSearchResults(unitID, searchRequestID, results) })
	}
	if h, ok := e.pub.(SearchResponseReceivedHook); ok {
		guard(func() { h.SearchResponseReceived(unitID) })
	}
	if categorySearch {
		if h, ok := e.pub.(CategoryResultsViewHook); ok {
			guard(func() { h.CategoryResultsView(unitID) })
		}
		return
	}
	if h, ok := e.pub.(SearchResultsViewHook); ok {
		guard(func() { h.SearchResultsView(unitID) })
	}
}

// guard runs one hook. A panicking hook is dropped so the search result is
// never affected by analytics.
func guard(hook func()) {
	defer func() { _ = recover() }()
	hook()
}
