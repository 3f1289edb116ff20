// Command pagemd converts web pages into Markdown and derived formats.
package main

import "github.com/calder-ross/pagemd/cmd"

func main() {
	cmd.Execute()
}
