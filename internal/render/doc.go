// Package render serializes a resolved configuration as a wp-config.php
// bootstrap, a shell env file, JSON or YAML.
package render
