package main

import "github.com/bryanwahyu/osintmap/cmd/osintctl/commands"

func main() {
	commands.Execute()
}
