package registry

import (
	"sync"

	"github.com/labelkit/labelkit/pkg/errors"
)

// DefaultInstance is the sentinel identifier of the local instance.
const DefaultInstance = "default"

// Instance is one named registry deployment: a set of stores keyed by kind
// plus identity metadata used in log output.
type Instance struct {
	name   string
	remote bool
	url    string

	mu     sync.RWMutex
	stores map[Kind]Store
}

// NewInstance creates an instance with the given name.
func NewInstance(name string, opts ...InstanceOption) *Instance {
	inst := &Instance{
		name:   name,
		stores: make(map[Kind]Store),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// InstanceOption configures an Instance.
type InstanceOption func(*Instance)

// WithRemote marks the instance as hosted and records its base URL.
func WithRemote(url string) InstanceOption {
	return func(inst *Instance) {
		inst.remote = true
		inst.url = url
	}
}

// WithStore registers a store for its kind.
func WithStore(store Store) InstanceOption {
	return func(inst *Instance) {
		inst.stores[store.Kind()] = store
	}
}

// Name returns the instance identifier.
func (inst *Instance) Name() string {
	return inst.name
}

// Remote reports whether the instance is hosted.
func (inst *Instance) Remote() bool {
	return inst.remote
}

// URL returns the hosted instance base URL, or "" for local instances.
func (inst *Instance) URL() string {
	return inst.url
}

// Store returns the store for a kind, or a not found error when the
// instance holds no registry of that kind.
func (inst *Instance) Store(kind Kind) (Store, error) {
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	store, ok := inst.stores[kind]
	if !ok {
		return nil, errors.NewNotFoundError("registry", kind.String())
	}
	return store, nil
}

// SetStore registers a store for its kind.
func (inst *Instance) SetStore(store Store) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.stores[store.Kind()] = store
}

// Instances is a thread-safe container of named registry instances. The
// local instance is registered under DefaultInstance.
type Instances struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewInstances creates an empty instance container.
func NewInstances() *Instances {
	return &Instances{instances: make(map[string]*Instance)}
}

// Set registers an instance under its name.
func (s *Instances) Set(inst *Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[inst.Name()] = inst
}

// Get returns the named instance. An unknown name is an
// errors.UnknownInstanceError: no implicit fallback to the local instance
// is attempted.
func (s *Instances) Get(name string) (*Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[name]
	if !ok {
		return nil, errors.NewUnknownInstanceError(name)
	}
	return inst, nil
}

// Default returns the local instance.
func (s *Instances) Default() (*Instance, error) {
	return s.Get(DefaultInstance)
}

// Len returns the number of registered instances.
func (s *Instances) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// Names returns the registered instance names.
func (s *Instances) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	return names
}
