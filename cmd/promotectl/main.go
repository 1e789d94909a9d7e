package main

import "os"

func main() {
	rootCmd := newRoot().Command()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
