package main

import "github.com/mvbdecode/mvbdecode/cli"

func main() {
	cli.Execute()
}
