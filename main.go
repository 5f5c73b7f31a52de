package main

import "github.com/LucasFSouza552/MegaSuperVendas/cmd"

func main() {
	cmd.Execute()
}
