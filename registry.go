package mcplite

import (
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Registry maps tool names to records in registration order. Entries are only ever
// added. Fill it before serving starts; Register is nevertheless safe for concurrent
// use with Get and List.
type Registry struct {
	mu          sync.RWMutex
	tools       *orderedmap.OrderedMap[string, *ToolRecord]
	middlewares []Middleware
	opts        registryOptions
}

// NewRegistry creates an empty Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Registry{
		tools: orderedmap.New[string, *ToolRecord](),
		opts:  o,
	}
}

// Register builds a ToolRecord from meta and adds it under name. An empty name is
// replaced by the handler's declared Go function name; anonymous functions cannot be
// named and fail with ErrUnnamedTool. Registering a name twice fails with
// ErrDuplicateTool and leaves the first record in place. All failures are *RegistrationError.
func (r *Registry) Register(name string, h Handler, meta Metadata) error {
	if h == nil {
		return &RegistrationError{Name: name, Err: ErrNilHandler}
	}
	if name == "" {
		name = funcName(h)
		if name == "" {
			return &RegistrationError{Err: ErrUnnamedTool}
		}
	}
	rec, err := newToolRecord(name, h, meta, r.opts.strict)
	if err != nil {
		return &RegistrationError{Name: name, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools.Get(name); ok {
		return &RegistrationError{Name: name, Err: ErrDuplicateTool}
	}
	rec.call = r.wrap(name, h)
	r.tools.Set(name, rec)
	r.opts.logger.Info("registered tool", "tool", name, "params", len(rec.Params), "required", len(rec.Schema.Required))
	return nil
}

// MustRegister is like Register but panics on error. Use it in setup code where a
// registration failure should abort startup.
func (r *Registry) MustRegister(name string, h Handler, meta Metadata) {
	if err := r.Register(name, h, meta); err != nil {
		panic(err)
	}
}

// Get returns the record registered under name, or an error wrapping ErrToolNotFound.
func (r *Registry) Get(name string) (*ToolRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.tools.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return rec, nil
}

// List returns all records in registration order.
func (r *Registry) List() []*ToolRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ToolRecord, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools.Len()
}

// wrap applies the stored middlewares (first is outermost). Caller holds r.mu.
func (r *Registry) wrap(name string, h Handler) Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](name, h)
	}
	return h
}

var anonymousFunc = regexp.MustCompile(`^(func)?\d+$`)

// funcName returns the declared name of a function value ("add" for pkg.add, "Add"
// for a method value (*T).Add), or "" for closures and non-functions.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	full := strings.TrimSuffix(rf.Name(), "-fm")
	name := full[strings.LastIndex(full, ".")+1:]
	if name == "" || anonymousFunc.MatchString(name) || strings.ContainsAny(name, "[]") {
		return ""
	}
	return name
}
