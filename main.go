package main

import "github.com/thereayou/appointly/cmd/server"

func main() {
	server.NewServer().Run()
}
