package main

import (
	"fmt"
	"os"

	"github.com/respic/respic/cmd"
	"github.com/respic/respic/logger"
)

func main() {
	err := cmd.RootCmd.Execute()
	logger.Close()
	if err != nil {
		fmt.Println("Error:", err.Error())
		os.Exit(1)
	}
}
