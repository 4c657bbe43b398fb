// Package main provides the dataarray CLI: it validates, documents and
// instantiates data array class definitions stored in JSON, TOML or YAML files.
package main

func main() {
	Execute()
}
