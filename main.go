package main

import "github.com/fatcatfablab/ticketgen/cmd"

func main() {
	cmd.Execute()
}
