package main

import "github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/cmd"

func main() {
	cmd.Execute()
}
