package resolver

import "os"

// Kind selects how an entry turns environment state into a value.
type Kind int

const (
	// KindText uses the variable verbatim when non-empty, the default otherwise.
	KindText Kind = iota
	// KindLiteral ignores the environment and always yields the default.
	KindLiteral
	// KindHostPort joins the raw host variable and the defaulted port with a colon.
	KindHostPort
	// KindFlag is true only when the variable equals "true".
	KindFlag
)

// Source records where a resolved value came from.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceDefault     Source = "default"
	SourceLiteral     Source = "literal"
)

// Group clusters related entries in rendered output.
type Group string

const (
	GroupDatabase Group = "database"
	GroupKeys     Group = "keys"
	GroupTables   Group = "tables"
	GroupDebug    Group = "debug"
)

// Entry declares one configuration key and how it is resolved.
// Default is a string, a bool, or nil when the entry has no fallback of its own.
type Entry struct {
	Key     string
	EnvVar  string
	Default any
	Kind    Kind
	Group   Group
	// Secret marks credentials and salts that must not leak into logs or
	// inspection output.
	Secret bool
	// Variable marks keys emitted as a PHP global rather than a constant.
	Variable bool
}

// Setting is an Entry after resolution.
type Setting struct {
	Key      string
	EnvVar   string
	Value    any
	Source   Source
	Group    Group
	Secret   bool
	Variable bool
}

// Environment is a read-only view over named variables.
type Environment interface {
	Lookup(name string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

// Lookup implements Environment.
func (OSEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is an in-memory Environment, mostly useful in tests.
type MapEnvironment map[string]string

// Lookup implements Environment.
func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
