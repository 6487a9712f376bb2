package main

import "github.com/zfogg/uploadfile/internal/cmd"

func main() {
	cmd.Execute()
}
