package main

import "github.com/latebind/latebind/cmd/latebind"

func main() { latebind.Execute() }
