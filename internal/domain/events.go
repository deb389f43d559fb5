package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFragmentAddRequested    EventType = "FragmentAddRequested"
	EventFragmentRemoveRequested EventType = "FragmentRemoveRequested"
	EventOrGroupRequested        EventType = "OrGroupRequested"
	EventNotToggleRequested      EventType = "NotToggleRequested"
	EventClearRequested          EventType = "ClearRequested"
	EventVariableSetRequested    EventType = "VariableSetRequested"
	EventProfileApplyRequested   EventType = "ProfileApplyRequested"
	EventQueryUpdated            EventType = "QueryUpdated"
	EventDuplicateFragment       EventType = "DuplicateFragment"
	EventFragmentNotFound        EventType = "FragmentNotFound"
	EventCatalogLoaded           EventType = "CatalogLoaded"
	EventCatalogSaved            EventType = "CatalogSaved"
	EventCategoryAdded           EventType = "CategoryAdded"
	EventCategoryRemoved         EventType = "CategoryRemoved"
	EventCategoryRenamed         EventType = "CategoryRenamed"
	EventDorkAdded               EventType = "DorkAdded"
	EventDorkRemoved             EventType = "DorkRemoved"
	EventDorkRenamed             EventType = "DorkRenamed"
	EventDorksMoved              EventType = "DorksMoved"
	EventProfileSaved            EventType = "ProfileSaved"
	EventProfileDeleted          EventType = "ProfileDeleted"
	EventError                   EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FragmentAddRequested asks the assembler to append a fragment
type FragmentAddRequested struct {
	Text    string
	Negated bool
}

func (e FragmentAddRequested) Type() EventType { return EventFragmentAddRequested }

// FragmentRemoveRequested asks the assembler to drop a fragment
type FragmentRemoveRequested struct {
	Text string
}

func (e FragmentRemoveRequested) Type() EventType { return EventFragmentRemoveRequested }

// OrGroupRequested asks the assembler to append an OR group
type OrGroupRequested struct {
	Texts []string
}

func (e OrGroupRequested) Type() EventType { return EventOrGroupRequested }

// NotToggleRequested flips a fragment between plain and negated
type NotToggleRequested struct {
	Text string
}

func (e NotToggleRequested) Type() EventType { return EventNotToggleRequested }

// ClearRequested empties the active set
type ClearRequested struct{}

func (e ClearRequested) Type() EventType { return EventClearRequested }

// VariableSetRequested sets a {placeholder} substitution value
type VariableSetRequested struct {
	Name  string
	Value string
}

func (e VariableSetRequested) Type() EventType { return EventVariableSetRequested }

// ProfileApplyRequested replaces the active set with a saved profile
type ProfileApplyRequested struct {
	Profile Profile
}

func (e ProfileApplyRequested) Type() EventType { return EventProfileApplyRequested }

// QueryUpdated is emitted whenever the rendered query changes
type QueryUpdated struct {
	Query     string
	Fragments int
}

func (e QueryUpdated) Type() EventType { return EventQueryUpdated }

// DuplicateFragment is emitted when an add would insert a fragment twice
type DuplicateFragment struct {
	Text string
}

func (e DuplicateFragment) Type() EventType { return EventDuplicateFragment }

// FragmentNotFound is emitted when a remove targets an absent fragment
type FragmentNotFound struct {
	Text string
}

func (e FragmentNotFound) Type() EventType { return EventFragmentNotFound }

// CatalogLoaded is emitted after the dork catalog has been read from disk
type CatalogLoaded struct {
	Path       string
	Categories int
	Profiles   int
}

func (e CatalogLoaded) Type() EventType { return EventCatalogLoaded }

// CatalogSaved is emitted after the catalog has been written to disk
type CatalogSaved struct {
	Path string
}

func (e CatalogSaved) Type() EventType { return EventCatalogSaved }

// CategoryAdded is emitted when a new category is created
type CategoryAdded struct {
	Key   string
	Label string
}

func (e CategoryAdded) Type() EventType { return EventCategoryAdded }

// CategoryRemoved is emitted when a category is deleted
type CategoryRemoved struct {
	Key string
}

func (e CategoryRemoved) Type() EventType { return EventCategoryRemoved }

// CategoryRenamed is emitted when a category gets a new label (and key)
type CategoryRenamed struct {
	OldKey string
	NewKey string
	Label  string
}

func (e CategoryRenamed) Type() EventType { return EventCategoryRenamed }

// DorkAdded is emitted when a fragment is added to a category
type DorkAdded struct {
	Category string
	Text     string
}

func (e DorkAdded) Type() EventType { return EventDorkAdded }

// DorkRemoved is emitted when fragments are deleted from a category
type DorkRemoved struct {
	Category string
	Texts    []string
}

func (e DorkRemoved) Type() EventType { return EventDorkRemoved }

// DorkRenamed is emitted when a fragment's text changes
type DorkRenamed struct {
	Category string
	OldText  string
	NewText  string
}

func (e DorkRenamed) Type() EventType { return EventDorkRenamed }

// DorksMoved is emitted when fragments move between categories
type DorksMoved struct {
	FromCategory string
	ToCategory   string
	Texts        []string
}

func (e DorksMoved) Type() EventType { return EventDorksMoved }

// ProfileSaved is emitted when a profile is stored in the catalog
type ProfileSaved struct {
	Name string
}

func (e ProfileSaved) Type() EventType { return EventProfileSaved }

// ProfileDeleted is emitted when a profile is removed from the catalog
type ProfileDeleted struct {
	Name string
}

func (e ProfileDeleted) Type() EventType { return EventProfileDeleted }

// ErrorEvent is emitted when an operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
