package resolver

// Config is the resolved configuration. The zero value holds no settings;
// build one with Resolve. It has no mutators and every accessor returns a
// copy, so a Config can be shared freely after construction.
type Config struct {
	settings []Setting
	index    map[string]int
}

// Resolve reads the declared variables from env and applies the defaults.
// It always succeeds and reads env afresh on every call.
func Resolve(env Environment) Config {
	if env == nil {
		env = OSEnvironment{}
	}

	cfg := Config{
		settings: make([]Setting, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		value, source := resolveEntry(env, e)
		cfg.index[e.Key] = len(cfg.settings)
		cfg.settings = append(cfg.settings, Setting{
			Key:      e.Key,
			EnvVar:   e.EnvVar,
			Value:    value,
			Source:   source,
			Group:    e.Group,
			Secret:   e.Secret,
			Variable: e.Variable,
		})
	}
	return cfg
}

func resolveEntry(env Environment, e Entry) (any, Source) {
	switch e.Kind {
	case KindLiteral:
		return e.Default, SourceLiteral
	case KindHostPort:
		// The host is concatenated raw: an unset host yields ":port".
		host, _ := env.Lookup(e.EnvVar)
		port, portSet := nonEmpty(env, EnvDatabasePort)
		if !portSet {
			port = DefaultDatabasePort
		}
		source := SourceDefault
		if host != "" || portSet {
			source = SourceEnvironment
		}
		return host + ":" + port, source
	case KindFlag:
		raw, ok := nonEmpty(env, e.EnvVar)
		if !ok {
			return false, SourceDefault
		}
		return raw == "true", SourceEnvironment
	default:
		if v, ok := nonEmpty(env, e.EnvVar); ok {
			return v, SourceEnvironment
		}
		return e.Default, SourceDefault
	}
}

func nonEmpty(env Environment, name string) (string, bool) {
	v, ok := env.Lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len reports the number of resolved settings.
func (c Config) Len() int {
	return len(c.settings)
}

// Settings returns the resolved settings in declaration order.
func (c Config) Settings() []Setting {
	out := make([]Setting, len(c.settings))
	copy(out, c.settings)
	return out
}

// Lookup returns the setting for key.
func (c Config) Lookup(key string) (Setting, bool) {
	i, ok := c.index[key]
	if !ok {
		return Setting{}, false
	}
	return c.settings[i], true
}

// String returns the string value for key, or "" when the key is unknown or
// not a string.
func (c Config) String(key string) string {
	s, ok := c.Lookup(key)
	if !ok {
		return ""
	}
	v, _ := s.Value.(string)
	return v
}

// Bool returns the boolean value for key, or false when the key is unknown or
// not a boolean.
func (c Config) Bool(key string) bool {
	s, ok := c.Lookup(key)
	if !ok {
		return false
	}
	v, _ := s.Value.(bool)
	return v
}

// Map returns a fresh key to value mapping.
func (c Config) Map() map[string]any {
	out := make(map[string]any, len(c.settings))
	for _, s := range c.settings {
		out[s.Key] = s.Value
	}
	return out
}

// DBName returns the resolved DB_NAME.
func (c Config) DBName() string { return c.String(KeyDBName) }

// DBUser returns the resolved DB_USER.
func (c Config) DBUser() string { return c.String(KeyDBUser) }

// DBPassword returns the resolved DB_PASSWORD. Callers must not log it.
func (c Config) DBPassword() string { return c.String(KeyDBPassword) }

// DBHost returns the composite host:port value.
func (c Config) DBHost() string { return c.String(KeyDBHost) }

// TablePrefix returns the resolved $table_prefix.
func (c Config) TablePrefix() string { return c.String(KeyTablePrefix) }

// Debug reports whether WP_DEBUG resolved to true.
func (c Config) Debug() bool { return c.Bool(KeyDebug) }
