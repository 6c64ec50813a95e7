package main

import "github.com/goplus/cmproj/cmd/cmproj/internal"

func main() {
	internal.Execute()
}
