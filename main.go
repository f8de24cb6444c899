package main

import "github.com/Rorical/StudyAssist/cmd"

func main() {
	cmd.Execute()
}
