package state

import (
	"fmt"
	"time"

	"github.com/larder/larder/internal/models"
)

// Action is a state transition. The set of actions is closed.
type Action interface {
	action()
}

// StartSession opens a household's larder.
type StartSession struct {
	Household string
	Owner     string
}

// EndSession closes the session and drops everything cached for it.
type EndSession struct{}

// SelectTab switches the active list.
type SelectTab struct {
	Tab models.ListType
}

// BeginLoading marks an operation as started.
type BeginLoading struct{}

// EndLoading marks an operation as finished.
type EndLoading struct{}

// Store caches a value under a key.
type Store struct {
	Key   string
	Value any
	At    time.Time
}

// Invalidate drops a cached key.
type Invalidate struct {
	Key string
}

// Prune drops every cached key older than the TTL.
type Prune struct {
	Now time.Time
}

func (StartSession) action() {}
func (EndSession) action()   {}
func (SelectTab) action()    {}
func (BeginLoading) action() {}
func (EndLoading) action()   {}
func (Store) action()        {}
func (Invalidate) action()   {}
func (Prune) action()        {}

// Reduce returns the state that results from applying a to s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case StartSession:
		s.Session = Session{Household: a.Household, Owner: a.Owner}
		s.cache = nil
	case EndSession:
		s.Session = Session{}
		s.cache = nil
	case SelectTab:
		if a.Tab.Valid() {
			s.ActiveTab = a.Tab
		}
	case BeginLoading:
		s.Loading++
	case EndLoading:
		if s.Loading > 0 {
			s.Loading--
		}
	case Store:
		m := s.withCache()
		m[a.Key] = CacheItem{Value: a.Value, StoredAt: a.At}
		s.cache = m
	case Invalidate:
		if _, ok := s.cache[a.Key]; ok {
			m := s.withCache()
			delete(m, a.Key)
			s.cache = m
		}
	case Prune:
		m := s.withCache()
		for k, item := range m {
			if s.expired(item, a.Now) {
				delete(m, k)
			}
		}
		s.cache = m
	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}
	return s
}

// ListKey is the cache key for a list view.
func ListKey(tab models.ListType) string {
	return "list:" + string(tab)
}
