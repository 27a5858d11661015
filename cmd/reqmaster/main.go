// Command reqmaster manages schema-typed requirement objects and the
// symmetric links between them.
package main

import "github.com/mesh-intelligence/reqmaster/internal/cli"

func main() {
	cli.Execute()
}
