package livesearch

import (
	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/events"
)

// SearchUnitID is the unit id passed to every lifecycle hook.
const SearchUnitID = domain.SearchUnitID

// Publisher receives search lifecycle events. Any value is accepted; each
// hook fires only when the publisher implements the matching interface.
type Publisher = events.Publisher

// Lifecycle hook interfaces a Publisher may implement.
type (
	SearchRequestSentHook      = events.SearchRequestSentHook
	SearchResponseReceivedHook = events.SearchResponseReceivedHook
	CategoryResultsViewHook    = events.CategoryResultsViewHook
	SearchResultsViewHook      = events.SearchResultsViewHook
	InputRecorder              = events.InputRecorder
	ResultsRecorder            = events.ResultsRecorder
)

// SearchInput is the search intent recorded before dispatch. Filter holds
// the composed clauses actually sent.
type SearchInput = events.SearchInput

// EventFuncs builds a Publisher from optional callbacks.
type EventFuncs = events.Funcs

// Fanout forwards every event to each publisher in order.
type Fanout = events.Fanout
