package main

import "github.com/jsphweid/chordmidi/cmd"

func main() {
	cmd.Execute()
}
