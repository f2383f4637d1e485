package main

import "github.com/user/govaudit/cmd"

func main() {
	cmd.Execute()
}
