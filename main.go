package main

import "github.com/javaloayza/postboard/commands"

func main() {
	commands.Execute()
}
