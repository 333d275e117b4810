// Command scwfcctl is the CLI entry point for the SC+WFC solver: database
// validation, headless solving, and version reporting.
package main

import "github.com/hborlik/scwfc/cmd/scwfcctl/cmd"

func main() {
	cmd.Execute()
}
