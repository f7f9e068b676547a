// Package config loads orderintake configuration from YAML files and the
// environment using koanf.
//
// Precedence is defaults < config file < ORDERINTAKE_* environment variables,
// so deployments can ship a file and still override secrets via env.
package config
