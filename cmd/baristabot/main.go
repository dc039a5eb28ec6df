// Command baristabot runs the BaristaBot cafe ordering agent as a terminal
// chat, an HTTP API or an MCP server.
package main

func main() {
	Execute()
}
