package main

import "github.com/jsphweid/mki/cmd"

func main() {
	cmd.Execute()
}
