package main

import "statuscheck-backend/cmd"

func main() {
	cmd.Run()
}
