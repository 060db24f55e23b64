package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/betulabla/foundation/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "create-admin",
		Description: "Create an admin account, or report the existing one",
		Run:         internal.CreateAdmin,
	},
	{
		Name:        "seed-boreholes",
		Description: "Insert a few sample boreholes owned by an existing user",
		Run:         internal.SeedBoreholes,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		username     string
		email        string
		password     string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&username, "username", "", "Username for user operations")
	flag.StringVar(&email, "user-email", "", "Email for user operations")
	flag.StringVar(&password, "user-password", "", "Password for user operations")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if username != "" {
		os.Setenv("USERNAME", username)
	}
	if email != "" {
		os.Setenv("USER_EMAIL", email)
	}
	if password != "" {
		os.Setenv("USER_PASSWORD", password)
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
