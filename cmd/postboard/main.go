package main

import "github.com/yungbote/postboard-backend/cmd/postboard/commands"

func main() {
	commands.Execute()
}
