// Package main is the entry point for the mvnscan CLI.
package main

import "mvnscan/cmd"

func main() {
	cmd.Execute()
}
