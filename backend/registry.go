// This file is part of calcore.
//
// calcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// calcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with calcore.  If not, see <https://www.gnu.org/licenses/>.

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/logger"
)

// Factory creates a new, uninitialised, engine. The sink receives every log
// entry made by the engine.
type Factory func(sink logger.Sink) (Engine, error)

// Registry is the list of engines available at runtime, keyed by name.
type Registry struct {
	crit      sync.Mutex
	factories map[string]Factory
	order     []string
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a named factory to the registry. The first registered name
// is the default backend.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("backend: cannot register a backend with no name")
	}
	if f == nil {
		return fmt.Errorf("backend: cannot register %s with a nil factory", name)
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("backend: %s already registered", name)
	}
	r.factories[name] = f
	r.order = append(r.order, name)

	return nil
}

// Create a new engine using the named factory.
func (r *Registry) Create(name string, sink logger.Sink) (Engine, error) {
	r.crit.Lock()
	f, ok := r.factories[name]
	r.crit.Unlock()

	if !ok {
		return nil, curated.Errorf(UnknownBackend, name)
	}
	if sink == nil {
		sink = logger.Discard
	}

	return f(sink)
}

// Has returns true if the named backend is registered.
func (r *Registry) Has(name string) bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered backend names in alphabetical order.
func (r *Registry) Names() []string {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := make([]string, len(r.order))
	copy(n, r.order)
	sort.Strings(n)
	return n
}

// Default returns the name of the first registered backend. Returns the
// empty string if nothing has been registered.
func (r *Registry) Default() string {
	r.crit.Lock()
	defer r.crit.Unlock()

	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// Count returns the number of registered backends.
func (r *Registry) Count() int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return len(r.order)
}
