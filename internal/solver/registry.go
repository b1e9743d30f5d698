package solver

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrSolverNotFound reports that no solver is registered for a key.
	ErrSolverNotFound = errors.New("solver not found")
	// ErrDuplicateSolver reports a second registration for the same key.
	ErrDuplicateSolver = errors.New("duplicate solver")
)

// NotFoundError carries the missing key and a remediation hint.
type NotFoundError struct {
	Key  Key
	Hint string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("no solver found for year %d, day %d", e.Key.Year, e.Key.Day)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrSolverNotFound }

// Handle is a registered solver factory together with its identity.
type Handle struct {
	Key     Key
	Name    string
	Factory Factory
}

// New instantiates a fresh solver from the handle.
func (h Handle) New() (Solver, error) {
	if h.Factory == nil {
		return nil, fmt.Errorf("solver %s has no factory", h.Key)
	}
	instance := h.Factory()
	if instance == nil {
		return nil, fmt.Errorf("solver %s factory returned nil", h.Key)
	}
	return instance, nil
}

type registration struct {
	year    int
	name    string
	factory Factory
}

// Registry maps solver keys to factories. Solver packages fill it from init
// and it is only read afterwards.
type Registry struct {
	mu            sync.RWMutex
	registrations []registration
	byKey         map[Key]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: map[Key]Handle{}}
}

// Default is the process-wide registry solver packages register into.
var Default = NewRegistry()

// Register adds a solver to the Default registry.
func Register(year int, name string, factory Factory) error {
	return Default.Register(year, name, factory)
}

// MustRegister adds a solver to the Default registry and panics on conflict.
func MustRegister(year int, name string, factory Factory) {
	Default.MustRegister(year, name, factory)
}

// Register records a solver declared as name within year. The day is derived
// from the name; names without a usable day are kept but never resolve.
func (r *Registry) Register(year int, name string, factory Factory) error {
	if r == nil {
		return errors.New("registry is nil")
	}
	if factory == nil {
		return fmt.Errorf("register %d %q: factory is required", year, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byKey == nil {
		r.byKey = map[Key]Handle{}
	}
	if day, ok := ParseDay(name); ok {
		key := Key{Year: year, Day: day}
		if existing, exists := r.byKey[key]; exists {
			return fmt.Errorf("%w: %s already registered as %q", ErrDuplicateSolver, key, existing.Name)
		}
		r.byKey[key] = Handle{Key: key, Name: name, Factory: factory}
	}
	r.registrations = append(r.registrations, registration{year: year, name: name, factory: factory})
	return nil
}

// MustRegister is Register for use from init; it panics on error.
func (r *Registry) MustRegister(year int, name string, factory Factory) {
	if err := r.Register(year, name, factory); err != nil {
		panic(err)
	}
}

// FindOne resolves the solver registered for year and day.
func (r *Registry) FindOne(year, day int) (Handle, error) {
	key := Key{Year: year, Day: day}
	if r != nil {
		r.mu.RLock()
		handle, ok := r.byKey[key]
		r.mu.RUnlock()
		if ok {
			return handle, nil
		}
	}
	return Handle{}, &NotFoundError{
		Key:  key,
		Hint: fmt.Sprintf("run 'aoc create %d %d' to generate the boilerplate", year, day),
	}
}

// FindAll lists the solvers registered for year in ascending day order.
func (r *Registry) FindAll(year int) []Handle {
	handles := make([]Handle, 0)
	if r == nil {
		return handles
	}

	r.mu.RLock()
	for key, handle := range r.byKey {
		if key.Year == year {
			handles = append(handles, handle)
		}
	}
	r.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool {
		return handles[i].Key.Day < handles[j].Key.Day
	})
	return handles
}

// Years lists every year with at least one resolvable solver, ascending.
func (r *Registry) Years() []int {
	if r == nil {
		return nil
	}
	seen := map[int]struct{}{}
	r.mu.RLock()
	for key := range r.byKey {
		seen[key.Year] = struct{}{}
	}
	r.mu.RUnlock()

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Unresolved returns the declared names in year whose day could not be parsed.
func (r *Registry) Unresolved(year int) []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0)
	r.mu.RLock()
	for _, reg := range r.registrations {
		if reg.year != year {
			continue
		}
		if _, ok := ParseDay(reg.name); !ok {
			names = append(names, reg.name)
		}
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// ParseDay derives a day number from a declared solver name such as
// "Day01", "day7" or "12". Only positive values are accepted.
func ParseDay(name string) (int, bool) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) >= 3 && strings.EqualFold(trimmed[:3], "day") {
		trimmed = strings.TrimLeft(trimmed[3:], "_- ")
	}
	if trimmed == "" {
		return 0, false
	}
	for _, ch := range trimmed {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	day, err := strconv.Atoi(trimmed)
	if err != nil || day <= 0 {
		return 0, false
	}
	return day, true
}
