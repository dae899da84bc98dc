package main

import "github.com/archivedesk/minutes/cmd"

func main() {
	cmd.Execute()
}
