package config

import (
	_ "embed"
)

//go:embed example.yaml
var exampleYaml string

// Example returns an example config yaml with all keys set to their
// defaults.
func Example() string {
	return exampleYaml
}
