package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventFetchStarted     EventType = "FetchStarted"
	EventFetchCompleted   EventType = "FetchCompleted"
	EventFetchFailed      EventType = "FetchFailed"
	EventQueryChanged     EventType = "QueryChanged"
	EventWidgetClosed     EventType = "WidgetClosed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after every committed selection
type SelectionChangedEvent struct {
	WidgetID string
	Selected []Option
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// FetchStartedEvent is emitted when a fetch call is dispatched
type FetchStartedEvent struct {
	WidgetID string
	Token    uint64
	Params   FetchParams
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchCompletedEvent is emitted when a fetched page has been applied
type FetchCompletedEvent struct {
	WidgetID string
	Token    uint64
	Count    int
	Search   PageMeta
}

func (e FetchCompletedEvent) Type() EventType { return EventFetchCompleted }

// FetchFailedEvent is emitted when the latest fetch call failed
type FetchFailedEvent struct {
	WidgetID string
	Token    uint64
	Err      error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// QueryChangedEvent is emitted when the search draft changes
type QueryChangedEvent struct {
	WidgetID string
	Query    string
	Applied  bool
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// WidgetClosedEvent is emitted once when a widget is torn down
type WidgetClosedEvent struct {
	WidgetID string
}

func (e WidgetClosedEvent) Type() EventType { return EventWidgetClosed }
