// Command multimerge resolves and executes a merge plan across
// multiple project trees onto one output tree.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
