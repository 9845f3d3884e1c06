package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	cfg := Resolve(MapEnvironment{})
	require.Equal(t, len(Entries()), cfg.Len())

	for _, e := range Entries() {
		if e.Kind == KindHostPort {
			continue
		}
		s, ok := cfg.Lookup(e.Key)
		require.True(t, ok, "missing key %s", e.Key)
		assert.Equal(t, e.Default, s.Value, "key %s", e.Key)
	}

	assert.Equal(t, ":3306", cfg.DBHost())
	assert.Equal(t, "wp_", cfg.TablePrefix())
	assert.False(t, cfg.Debug())
	assert.Equal(t, "utf8", cfg.String(KeyDBCharset))
	assert.Equal(t, "", cfg.String(KeyDBCollate))
}

func TestResolveEmptyValuesFallBack(t *testing.T) {
	t.Parallel()

	env := MapEnvironment{}
	for _, v := range Variables() {
		env[v.Name] = ""
	}

	cfg := Resolve(env)
	for _, e := range Entries() {
		if e.Kind == KindHostPort {
			continue
		}
		s, _ := cfg.Lookup(e.Key)
		assert.Equal(t, e.Default, s.Value, "key %s", e.Key)
		if e.Kind != KindLiteral {
			assert.Equal(t, SourceDefault, s.Source, "key %s", e.Key)
		}
	}
	assert.Equal(t, ":3306", cfg.DBHost())
}

func TestResolveUsesValuesVerbatim(t *testing.T) {
	t.Parallel()

	env := MapEnvironment{}
	want := map[string]string{}
	for _, e := range Entries() {
		if e.Kind != KindText {
			continue
		}
		// Surrounding whitespace and "0" are kept as given.
		v := " value-for-" + e.EnvVar + " "
		if e.Key == KeyDBName {
			v = "0"
		}
		env[e.EnvVar] = v
		want[e.Key] = v
	}

	cfg := Resolve(env)
	for key, v := range want {
		s, ok := cfg.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, v, s.Value, "key %s", key)
		assert.Equal(t, SourceEnvironment, s.Source, "key %s", key)
	}
}

func TestResolveDBHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		env        MapEnvironment
		want       string
		wantSource Source
	}{
		{name: "HostOnly", env: MapEnvironment{EnvDatabaseHost: "db"}, want: "db:3306", wantSource: SourceEnvironment},
		{name: "NeitherSet", env: MapEnvironment{}, want: ":3306", wantSource: SourceDefault},
		{name: "HostAndPort", env: MapEnvironment{EnvDatabaseHost: "mysql.internal", EnvDatabasePort: "3307"}, want: "mysql.internal:3307", wantSource: SourceEnvironment},
		{name: "PortOnly", env: MapEnvironment{EnvDatabasePort: "3310"}, want: ":3310", wantSource: SourceEnvironment},
		{name: "EmptyPort", env: MapEnvironment{EnvDatabaseHost: "db", EnvDatabasePort: ""}, want: "db:3306", wantSource: SourceEnvironment},
		{name: "EmptyHostKeptRaw", env: MapEnvironment{EnvDatabaseHost: ""}, want: ":3306", wantSource: SourceDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := Resolve(tc.env).Lookup(KeyDBHost)
			require.True(t, ok)
			assert.Equal(t, tc.want, s.Value)
			assert.Equal(t, tc.wantSource, s.Source)
		})
	}
}

func TestResolveDebugFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  MapEnvironment
		want bool
	}{
		{name: "Unset", env: MapEnvironment{}, want: false},
		{name: "True", env: MapEnvironment{EnvDebug: "true"}, want: true},
		{name: "UpperCase", env: MapEnvironment{EnvDebug: "TRUE"}, want: false},
		{name: "One", env: MapEnvironment{EnvDebug: "1"}, want: false},
		{name: "Padded", env: MapEnvironment{EnvDebug: " true"}, want: false},
		{name: "False", env: MapEnvironment{EnvDebug: "false"}, want: false},
		{name: "Empty", env: MapEnvironment{EnvDebug: ""}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Resolve(tc.env)
			assert.Equal(t, tc.want, cfg.Debug())
			s, _ := cfg.Lookup(KeyDebug)
			assert.IsType(t, false, s.Value)
		})
	}
}

func TestResolveLiteralsIgnoreEnvironment(t *testing.T) {
	t.Parallel()

	cfg := Resolve(MapEnvironment{"DB_CHARSET": "latin1", "WORDPRESS_DB_CHARSET": "latin1"})
	s, _ := cfg.Lookup(KeyDBCharset)
	assert.Equal(t, "utf8", s.Value)
	assert.Equal(t, SourceLiteral, s.Source)
}

func TestResolveReadsOSEnvironment(t *testing.T) {
	t.Setenv(EnvDatabaseHost, "db")
	t.Setenv(EnvTablePrefix, "blog_")
	t.Setenv(EnvDebug, "true")

	cfg := Resolve(nil)
	assert.Equal(t, "db:3306", cfg.DBHost())
	assert.Equal(t, "blog_", cfg.TablePrefix())
	assert.True(t, cfg.Debug())

	// No caching across environment changes.
	t.Setenv(EnvTablePrefix, "")
	assert.Equal(t, "wp_", Resolve(OSEnvironment{}).TablePrefix())
}

func TestConfigIsImmutable(t *testing.T) {
	t.Parallel()

	cfg := Resolve(MapEnvironment{EnvDatabaseName: "shop"})

	settings := cfg.Settings()
	settings[0].Value = "tampered"
	m := cfg.Map()
	m[KeyDBName] = "tampered"
	entries := Entries()
	entries[0].Default = "tampered"

	assert.Equal(t, "shop", cfg.DBName())
	assert.Equal(t, DefaultDatabaseName, Resolve(MapEnvironment{}).DBName())
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	cfg := Resolve(MapEnvironment{
		EnvDatabaseName:     "shop",
		EnvDatabaseUser:     "editor",
		EnvDatabasePassword: "hunter2",
		EnvDatabaseHost:     "db",
		EnvDatabasePort:     "3307",
		EnvTablePrefix:      "shop_",
		EnvDebug:            "true",
	})

	assert.Equal(t, cfg.String(KeyDBName), cfg.DBName())
	assert.Equal(t, "shop", cfg.DBName())
	assert.Equal(t, "editor", cfg.DBUser())
	assert.Equal(t, "hunter2", cfg.DBPassword())
	assert.Equal(t, "db:3307", cfg.DBHost())
	assert.Equal(t, "shop_", cfg.TablePrefix())
	assert.True(t, cfg.Debug())
}

func TestConfigLookupUnknownKey(t *testing.T) {
	t.Parallel()

	cfg := Resolve(MapEnvironment{})
	_, ok := cfg.Lookup("ABSPATH")
	assert.False(t, ok)
	assert.Equal(t, "", cfg.String("ABSPATH"))
	assert.False(t, cfg.Bool("ABSPATH"))

	var zero Config
	assert.Equal(t, 0, zero.Len())
	assert.Equal(t, "", zero.DBHost())
}

func TestSecretsAndOrder(t *testing.T) {
	t.Parallel()

	var keys, secrets []string
	for _, s := range Resolve(MapEnvironment{}).Settings() {
		keys = append(keys, s.Key)
		if s.Secret {
			secrets = append(secrets, s.Key)
		}
	}

	assert.Equal(t, []string{
		KeyDBName, KeyDBUser, KeyDBPassword, KeyDBHost, KeyDBCharset, KeyDBCollate,
		KeyAuthKey, KeySecureAuthKey, KeyLoggedInKey, KeyNonceKey,
		KeyAuthSalt, KeySecureAuthSalt, KeyLoggedInSalt, KeyNonceSalt,
		KeyTablePrefix, KeyDebug,
	}, keys)
	assert.Len(t, secrets, 9)
}

func TestVariables(t *testing.T) {
	t.Parallel()

	vars := Variables()
	byName := make(map[string]Variable, len(vars))
	for _, v := range vars {
		byName[v.Name] = v
	}

	assert.Len(t, vars, 15)
	assert.Equal(t, "3306", byName[EnvDatabasePort].Default)
	assert.Equal(t, KeyDBHost, byName[EnvDatabasePort].Key)
	assert.Equal(t, "", byName[EnvDatabaseHost].Default)
	assert.Equal(t, "false", byName[EnvDebug].Default)
	assert.Equal(t, DefaultUniquePhrase, byName[EnvNonceSalt].Default)
	assert.Equal(t, "wp_", byName[EnvTablePrefix].Default)
}
