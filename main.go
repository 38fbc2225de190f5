/*
Copyright © 2025 phamtrung99
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/phamtrung99/ragdex/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; API keys may come from the real environment.
	_ = godotenv.Load()
}
