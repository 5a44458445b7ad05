// Command remapcheck checks YAML mapping files against the Go packages that
// declare the mapped types.
//
// Usage:
//
//	remapcheck check -f mapping.yaml -p ./store -p ./warehouse
//	remapcheck fmt -f mapping.yaml -w
//	remapcheck fields store.Customer -p ./store --depth 2
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
