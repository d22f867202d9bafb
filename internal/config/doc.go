// Package config defines the application configuration structure and
// loads it from the environment via viper, validating the result with
// go-playground/validator struct tags.
package config
