package main

import "github.com/curato/curation-client/cmd/curato/cmd"

func main() {
	cmd.Execute()
}
