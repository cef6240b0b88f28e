package fakeweb

import (
	"iter"

	"github.com/launchdarkly/fake-http-context/collection"
)

// ApplicationState holds application-wide items, keyed case-insensitively. Lock and UnLock do
// nothing.
type ApplicationState struct {
	items *collection.Collection[any]
}

var _ HTTPApplicationState = (*ApplicationState)(nil)

func NewApplicationState() *ApplicationState {
	return &ApplicationState{items: collection.New[any](collection.IgnoreCase)}
}

func (a *ApplicationState) Add(name string, value any) { a.items.Add(name, value) }
func (a *ApplicationState) Set(name string, value any) { a.items.Set(name, value) }

// Get returns the first item with the given name, or nil.
func (a *ApplicationState) Get(name string) any {
	v, _ := a.items.Get(name)
	return v
}

func (a *ApplicationState) GetAt(index int) (any, error)     { return a.items.GetAt(index) }
func (a *ApplicationState) GetKey(index int) (string, error) { return a.items.GetKey(index) }
func (a *ApplicationState) AllKeys() []string                { return a.items.AllKeys() }
func (a *ApplicationState) Remove(name string)               { a.items.Remove(name) }
func (a *ApplicationState) RemoveAt(index int) error         { return a.items.RemoveAt(index) }
func (a *ApplicationState) RemoveAll()                       { a.items.Clear() }
func (a *ApplicationState) Clear()                           { a.items.Clear() }
func (a *ApplicationState) Count() int                       { return a.items.Count() }
func (a *ApplicationState) All() iter.Seq2[string, any]      { return a.items.Entries() }
func (a *ApplicationState) Lock()                            {}
func (a *ApplicationState) UnLock()                          {}
