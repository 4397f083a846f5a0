// Package config provides centralized application configuration.
//
// Configuration is loaded from environment variables, optionally seeded from a
// .env file in the working directory. Nested keys map to underscore-separated
// variables (e.g. api.token -> API_TOKEN). Defaults are declared as struct
// tags on the partial Config types owned by each core package.
package config
