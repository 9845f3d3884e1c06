// Package resolver turns the WORDPRESS_* environment variables into the
// constants a WordPress bootstrap expects. Every variable is optional: an
// unset or empty value falls back to a literal default, so resolution cannot
// fail. DB_HOST is composed from the raw host and the defaulted port, and
// WP_DEBUG is true only for the exact string "true".
package resolver
