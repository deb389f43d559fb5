package assembler

import (
	"log"
	"sync"

	"dorkdeck/internal/domain"
	"dorkdeck/internal/eventbus"
)

// Service drives the assembler from request events on the bus and
// publishes the outcome, keeping the query logic free of any UI concern.
// Reads are snapshot methods guarded by the same mutex the handlers use.
type Service struct {
	mu  sync.Mutex
	asm *Assembler
	bus eventbus.EventBus
}

// NewService creates the service and subscribes it to request events
func NewService(bus eventbus.EventBus) *Service {
	s := &Service{asm: New(), bus: bus}

	bus.Subscribe(eventbus.EventFragmentAddRequested, s.handleAdd)
	bus.Subscribe(eventbus.EventFragmentRemoveRequested, s.handleRemove)
	bus.Subscribe(eventbus.EventOrGroupRequested, s.handleOrGroup)
	bus.Subscribe(eventbus.EventNotToggleRequested, s.handleToggleNot)
	bus.Subscribe(eventbus.EventClearRequested, s.handleClear)
	bus.Subscribe(eventbus.EventVariableSetRequested, s.handleSetVariable)
	bus.Subscribe(eventbus.EventProfileApplyRequested, s.handleApplyProfile)

	return s
}

func (s *Service) handleAdd(e eventbus.DomainEvent) {
	event, ok := e.(domain.FragmentAddRequested)
	if !ok {
		return
	}

	s.mu.Lock()
	var err error
	if event.Negated {
		err = s.asm.AddNot(event.Text)
	} else {
		err = s.asm.Add(event.Text)
	}
	s.mu.Unlock()

	if err == ErrDuplicateFragment {
		s.bus.Publish(domain.DuplicateFragment{Text: event.Text})
		return
	}
	s.publishQuery()
}

func (s *Service) handleRemove(e eventbus.DomainEvent) {
	event, ok := e.(domain.FragmentRemoveRequested)
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.asm.Remove(event.Text)
	s.mu.Unlock()

	if err == ErrFragmentNotFound {
		s.bus.Publish(domain.FragmentNotFound{Text: event.Text})
		return
	}
	s.publishQuery()
}

func (s *Service) handleOrGroup(e eventbus.DomainEvent) {
	event, ok := e.(domain.OrGroupRequested)
	if !ok {
		return
	}

	// Validate before touching the set so a bad request leaves it intact
	members := dedupeGroup(event.Texts)
	if len(members) < 2 {
		s.bus.Publish(domain.ErrorEvent{Message: "select at least two fragments to group"})
		return
	}

	s.mu.Lock()
	// Members already in the set fold into the new group
	for _, t := range members {
		if s.asm.Contains(t) {
			_ = s.asm.Remove(t)
		}
	}
	err := s.asm.AddOrGroup(members)
	s.mu.Unlock()

	if err != nil {
		s.bus.Publish(domain.ErrorEvent{Message: err.Error(), Err: err})
	}
	s.publishQuery()
}

func (s *Service) handleToggleNot(e eventbus.DomainEvent) {
	event, ok := e.(domain.NotToggleRequested)
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.asm.ToggleNot(event.Text)
	s.mu.Unlock()

	if err == ErrFragmentNotFound {
		s.bus.Publish(domain.FragmentNotFound{Text: event.Text})
		return
	}
	s.publishQuery()
}

func (s *Service) handleClear(e eventbus.DomainEvent) {
	if _, ok := e.(domain.ClearRequested); !ok {
		return
	}

	s.mu.Lock()
	s.asm.Clear()
	s.mu.Unlock()

	s.publishQuery()
}

func (s *Service) handleSetVariable(e eventbus.DomainEvent) {
	event, ok := e.(domain.VariableSetRequested)
	if !ok {
		return
	}

	s.mu.Lock()
	s.asm.SetVar(event.Name, event.Value)
	s.mu.Unlock()

	s.publishQuery()
}

func (s *Service) handleApplyProfile(e eventbus.DomainEvent) {
	event, ok := e.(domain.ProfileApplyRequested)
	if !ok {
		return
	}
	p := event.Profile

	s.mu.Lock()
	s.asm.Clear()
	negated := make(map[string]bool, len(p.Negated))
	for _, t := range p.Negated {
		negated[t] = true
	}
	grouped := make(map[string]bool)
	for _, g := range p.OrGroups {
		for _, t := range g {
			grouped[t] = true
		}
		if err := s.asm.AddOrGroup(g); err != nil {
			log.Printf("profile %q: skipping group %v: %v", p.Name, g, err)
		}
	}
	for _, t := range p.Fragments {
		if grouped[t] {
			continue
		}
		var err error
		if negated[t] {
			err = s.asm.AddNot(t)
		} else {
			err = s.asm.Add(t)
		}
		if err != nil {
			log.Printf("profile %q: skipping fragment %q: %v", p.Name, t, err)
		}
	}
	for name, value := range p.Vars {
		s.asm.SetVar(name, value)
	}
	s.mu.Unlock()

	s.publishQuery()
}

func (s *Service) publishQuery() {
	s.mu.Lock()
	query := s.asm.Render()
	count := s.asm.Len()
	s.mu.Unlock()

	s.bus.Publish(domain.QueryUpdated{Query: query, Fragments: count})
}

// Query returns the current rendered query
func (s *Service) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Render()
}

// URL returns the current query as a Google search URL
func (s *Service) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.GoogleURL()
}

// Contains reports whether a fragment is in the active set
func (s *Service) Contains(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Contains(text)
}

// IsNegated reports whether a fragment is a negated term
func (s *Service) IsNegated(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.IsNegated(text)
}

// InGroup reports whether a fragment belongs to an OR group
func (s *Service) InGroup(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.InGroup(text)
}

// Fragments returns the active set in insertion order
func (s *Service) Fragments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Fragments()
}

// Len returns the number of fragments in the active set
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Len()
}

// Placeholders returns the distinct {name} tokens in the active set
func (s *Service) Placeholders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Placeholders()
}

// Vars returns a copy of the variable map
func (s *Service) Vars() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asm.Vars()
}

// Snapshot captures the active set as a profile for saving
func (s *Service) Snapshot(name, category string) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Profile{
		Name:      name,
		Category:  category,
		Fragments: s.asm.Fragments(),
		Vars:      s.asm.Vars(),
	}
	for _, pt := range s.asm.parts {
		if pt.group {
			p.OrGroups = append(p.OrGroups, append([]string(nil), pt.texts...))
		} else if pt.negated {
			p.Negated = append(p.Negated, pt.texts[0])
		}
	}
	return p
}
