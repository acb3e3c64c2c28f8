// Package main is the entry point for the Docsleuth CLI.
package main

import "docsleuth.dev/pkg/docsleuth/cmd"

func main() {
	cmd.Execute()
}
