// Package config holds shared configuration types read from environment
// variables via cleanenv, one file per concern.
package config
