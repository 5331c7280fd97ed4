package metrics

// EventCounter is a search lifecycle publisher that counts each hook call.
type EventCounter struct{}

// SearchRequestSent implements events.SearchRequestSentHook.
func (EventCounter) SearchRequestSent(unitID string) {
	SearchEventsTotal.WithLabelValues(unitID, "search_request_sent").Inc()
}

// SearchResponseReceived implements events.SearchResponseReceivedHook.
func (EventCounter) SearchResponseReceived(unitID string) {
	SearchEventsTotal.WithLabelValues(unitID, "search_response_received").Inc()
}

// CategoryResultsView implements events.CategoryResultsViewHook.
func (EventCounter) CategoryResultsView(unitID string) {
	SearchEventsTotal.WithLabelValues(unitID, "category_results_view").Inc()
}

// SearchResultsView implements events.SearchResultsViewHook.
func (EventCounter) SearchResultsView(unitID string) {
	SearchEventsTotal.WithLabelValues(unitID, "search_results_view").Inc()
}
