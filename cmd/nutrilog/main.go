package main

import "github.com/QMSS-G5072-2024/nutrilog/internal/cli"

func main() {
	cli.Execute()
}
