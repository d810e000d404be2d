package main

import "github.com/autobrr/transmission-cleanup/cmd"

func main() {
	cmd.Execute()
}
