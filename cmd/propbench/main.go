// Package main is the entry point for the propbench application
package main

import "github.com/probelabs/propbench/cmd"

func main() {
	cmd.Execute()
}
