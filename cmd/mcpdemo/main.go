// Command mcpdemo demonstrates mcpclient and mcpserver over the stdio
// transport: `mcpdemo serve` runs a minimal tool server, `mcpdemo call`
// spawns one and drives it as a client.
package main

func main() {
	Execute()
}
