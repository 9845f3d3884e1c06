package resolver

// Environment variable names.
const (
	EnvDatabaseName     = "WORDPRESS_DATABASE_NAME"
	EnvDatabaseUser     = "WORDPRESS_DATABASE_USER"
	EnvDatabasePassword = "WORDPRESS_DATABASE_PASSWORD"
	EnvDatabaseHost     = "WORDPRESS_DATABASE_HOST"
	EnvDatabasePort     = "WORDPRESS_DATABASE_PORT_NUMBER"
	EnvAuthKey          = "WORDPRESS_AUTH_KEY"
	EnvSecureAuthKey    = "WORDPRESS_SECURE_AUTH_KEY"
	EnvLoggedInKey      = "WORDPRESS_LOGGED_IN_KEY"
	EnvNonceKey         = "WORDPRESS_NONCE_KEY"
	EnvAuthSalt         = "WORDPRESS_AUTH_SALT"
	EnvSecureAuthSalt   = "WORDPRESS_SECURE_AUTH_SALT"
	EnvLoggedInSalt     = "WORDPRESS_LOGGED_IN_SALT"
	EnvNonceSalt        = "WORDPRESS_NONCE_SALT"
	EnvTablePrefix      = "WORDPRESS_TABLE_PREFIX"
	EnvDebug            = "WORDPRESS_DEBUG"
)

// Resolved keys.
const (
	KeyDBName         = "DB_NAME"
	KeyDBUser         = "DB_USER"
	KeyDBPassword     = "DB_PASSWORD"
	KeyDBHost         = "DB_HOST"
	KeyDBCharset      = "DB_CHARSET"
	KeyDBCollate      = "DB_COLLATE"
	KeyAuthKey        = "AUTH_KEY"
	KeySecureAuthKey  = "SECURE_AUTH_KEY"
	KeyLoggedInKey    = "LOGGED_IN_KEY"
	KeyNonceKey       = "NONCE_KEY"
	KeyAuthSalt       = "AUTH_SALT"
	KeySecureAuthSalt = "SECURE_AUTH_SALT"
	KeyLoggedInSalt   = "LOGGED_IN_SALT"
	KeyNonceSalt      = "NONCE_SALT"
	KeyTablePrefix    = "table_prefix"
	KeyDebug          = "WP_DEBUG"
)

const (
	DefaultDatabaseName = "wordpress"
	DefaultDatabaseUser = "wordpress"
	DefaultDatabasePort = "3306"
	DefaultCharset      = "utf8"
	DefaultTablePrefix  = "wp_"
	// DefaultUniquePhrase is the placeholder WordPress ships for keys and salts.
	DefaultUniquePhrase = "put your unique phrase here"
)

var entries = []Entry{
	{Key: KeyDBName, EnvVar: EnvDatabaseName, Default: DefaultDatabaseName, Group: GroupDatabase},
	{Key: KeyDBUser, EnvVar: EnvDatabaseUser, Default: DefaultDatabaseUser, Group: GroupDatabase},
	{Key: KeyDBPassword, EnvVar: EnvDatabasePassword, Default: "", Group: GroupDatabase, Secret: true},
	{Key: KeyDBHost, EnvVar: EnvDatabaseHost, Kind: KindHostPort, Group: GroupDatabase},
	{Key: KeyDBCharset, Default: DefaultCharset, Kind: KindLiteral, Group: GroupDatabase},
	{Key: KeyDBCollate, Default: "", Kind: KindLiteral, Group: GroupDatabase},

	{Key: KeyAuthKey, EnvVar: EnvAuthKey, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeySecureAuthKey, EnvVar: EnvSecureAuthKey, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeyLoggedInKey, EnvVar: EnvLoggedInKey, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeyNonceKey, EnvVar: EnvNonceKey, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeyAuthSalt, EnvVar: EnvAuthSalt, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeySecureAuthSalt, EnvVar: EnvSecureAuthSalt, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeyLoggedInSalt, EnvVar: EnvLoggedInSalt, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},
	{Key: KeyNonceSalt, EnvVar: EnvNonceSalt, Default: DefaultUniquePhrase, Group: GroupKeys, Secret: true},

	{Key: KeyTablePrefix, EnvVar: EnvTablePrefix, Default: DefaultTablePrefix, Group: GroupTables, Variable: true},

	{Key: KeyDebug, EnvVar: EnvDebug, Default: false, Kind: KindFlag, Group: GroupDebug},
}

// Entries returns a copy of the declared entries in output order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Variable describes one environment variable read during resolution.
type Variable struct {
	Name    string
	Default string
	Key     string
}

// Variables lists every environment variable consulted by Resolve, including
// the port that only feeds DB_HOST.
func Variables() []Variable {
	vars := make([]Variable, 0, len(entries)+1)
	for _, e := range entries {
		switch e.Kind {
		case KindLiteral:
			continue
		case KindHostPort:
			vars = append(vars,
				Variable{Name: e.EnvVar, Default: "", Key: e.Key},
				Variable{Name: EnvDatabasePort, Default: DefaultDatabasePort, Key: e.Key},
			)
		case KindFlag:
			vars = append(vars, Variable{Name: e.EnvVar, Default: "false", Key: e.Key})
		default:
			def, _ := e.Default.(string)
			vars = append(vars, Variable{Name: e.EnvVar, Default: def, Key: e.Key})
		}
	}
	return vars
}
