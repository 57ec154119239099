package layered

import "maps"

// Layer is a single named configuration layer.
type Layer[V any] struct {
	// Name identifies the layer (e.g., "user", "workspace", "defaults").
	Name string

	// Source indicates what kind of scope the layer represents. It
	// determines the layer's precedence within a Stack.
	Source Source

	// ReadOnly prevents writes through Stack.Set and Stack.Delete.
	ReadOnly bool

	// Data holds the layer's settings keyed by dotted path.
	Data map[string]V
}

// NewLayer creates an empty layer.
func NewLayer[V any](name string, source Source) *Layer[V] {
	return &Layer[V]{
		Name:   name,
		Source: source,
		Data:   make(map[string]V),
	}
}

// NewLayerWithData creates a layer holding a copy of data.
func NewLayerWithData[V any](name string, source Source, data map[string]V) *Layer[V] {
	l := NewLayer[V](name, source)
	maps.Copy(l.Data, data)
	return l
}

// Clone creates a copy of the layer. The data map is copied, values are not.
func (l *Layer[V]) Clone() *Layer[V] {
	return &Layer[V]{
		Name:     l.Name,
		Source:   l.Source,
		ReadOnly: l.ReadOnly,
		Data:     maps.Clone(l.Data),
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceDefault represents built-in default configuration.
	SourceDefault Source = iota
	// SourceUser represents user-scoped configuration.
	SourceUser
	// SourceWorkspace represents workspace or project configuration.
	SourceWorkspace
	// SourceEnv represents environment variable overrides.
	SourceEnv
	// SourceArgs represents command-line argument overrides.
	SourceArgs
	// SourceOverride represents in-memory session overrides.
	SourceOverride
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceWorkspace:
		return "workspace"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Standard precedence levels for configuration sources.
// Higher values win over lower values during resolution.
const (
	// PrecedenceDefault is the lowest precedence, for built-in defaults.
	PrecedenceDefault = 0

	// PrecedenceUser is for user-scoped settings.
	PrecedenceUser = 100

	// PrecedenceWorkspace is for workspace/project settings.
	PrecedenceWorkspace = 200

	// PrecedenceEnv is for environment variable overrides.
	PrecedenceEnv = 300

	// PrecedenceArgs is for command-line argument overrides.
	PrecedenceArgs = 400

	// PrecedenceOverride is the highest precedence, for session overrides.
	PrecedenceOverride = 1000
)

// Precedence returns the precedence level for a source.
func Precedence(source Source) int {
	switch source {
	case SourceDefault:
		return PrecedenceDefault
	case SourceUser:
		return PrecedenceUser
	case SourceWorkspace:
		return PrecedenceWorkspace
	case SourceEnv:
		return PrecedenceEnv
	case SourceArgs:
		return PrecedenceArgs
	case SourceOverride:
		return PrecedenceOverride
	default:
		return PrecedenceDefault
	}
}
