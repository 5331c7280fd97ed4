package events

import "encoding/json"

// Funcs is a Publisher built from optional callbacks. Nil callbacks are skipped.
type Funcs struct {
	OnSearchInput            func(unitID, searchRequestID string, in SearchInput)
	OnSearchResults          func(unitID, searchRequestID string, results json.RawMessage)
	OnSearchRequestSent      func(unitID string)
	OnSearchResponseReceived func(unitID string)
	OnCategoryResultsView    func(unitID string)
	OnSearchResultsView      func(unitID string)
}

// RecordSearchInput implements InputRecorder.
func (f Funcs) RecordSearchInput(unitID, searchRequestID string, in SearchInput) {
	if f.OnSearchInput != nil {
		f.OnSearchInput(unitID, searchRequestID, in)
	}
}

// RecordSearchResults implements ResultsRecorder.
func (f Funcs) RecordSearchResults(unitID, searchRequestID string, results json.RawMessage) {
	if f.OnSearchResults != nil {
		f.OnSearchResults(unitID, searchRequestID, results)
	}
}

// SearchRequestSent implements SearchRequestSentHook.
func (f Funcs) SearchRequestSent(unitID string) {
	if f.OnSearchRequestSent != nil {
		f.OnSearchRequestSent(unitID)
	}
}

// SearchResponseReceived implements SearchResponseReceivedHook.
func (f Funcs) SearchResponseReceived(unitID string) {
	if f.OnSearchResponseReceived != nil {
		f.OnSearchResponseReceived(unitID)
	}
}

// CategoryResultsView implements CategoryResultsViewHook.
func (f Funcs) CategoryResultsView(unitID string) {
	if f.OnCategoryResultsView != nil {
		f.OnCategoryResultsView(unitID)
	}
}

// SearchResultsView implements SearchResultsViewHook.
func (f Funcs) SearchResultsView(unitID string) {
	if f.OnSearchResultsView != nil {
		f.OnSearchResultsView(unitID)
	}
}

// Fanout forwards every hook to each publisher that implements it, in order.
// A publisher that panics is skipped; the ones after it still run.
type Fanout []Publisher

// RecordSearchInput implements InputRecorder.
func (f Fanout) RecordSearchInput(unitID, searchRequestID string, in SearchInput) {
	for _, p := range f {
		if r, ok := p.(InputRecorder); ok {
			guard(func() { r.RecordSearchInput(unitID, searchRequestID, in) })
		}
	}
}

// RecordSearchResults implements ResultsRecorder.
func (f Fanout) RecordSearchResults(unitID, searchRequestID string, results json.RawMessage) {
	for _, p := range f {
		if r, ok := p.(ResultsRecorder); ok {
			guard(func() { r.RecordSearchResults(unitID, searchRequestID, results) })
		}
	}
}

// SearchRequestSent implements SearchRequestSentHook.
func (f Fanout) SearchRequestSent(unitID string) {
	for _, p := range f {
		if h, ok := p.(SearchRequestSentHook); ok {
			guard(func() { h.SearchRequestSent(unitID) })
		}
	}
}

// SearchResponseReceived implements SearchResponseReceivedHook.
func (f Fanout) SearchResponseReceived(unitID string) {
	for _, p := range f {
		if h, ok := p.(SearchResponseReceivedHook); ok {
			guard(func() { h.SearchResponseReceived(unitID) })
		}
	}
}

// CategoryResultsView implements CategoryResultsViewHook.
func (f Fanout) CategoryResultsView(unitID string) {
	for _, p := range f {
		if h, ok := p.(CategoryResultsViewHook); ok {
			guard(func() { h.CategoryResultsView(unitID) })
		}
	}
}

// SearchResultsView implements SearchResultsViewHook.
func (f Fanout) SearchResultsView(unitID string) {
	for _, p := range f {
		if h, ok := p.(SearchResultsViewHook); ok {
			guard(func() { h.SearchResultsView(unitID) })
		}
	}
}
