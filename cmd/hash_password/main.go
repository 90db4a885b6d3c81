package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/paceline/paceline/pkg"
)

// prints the bcrypt hash to set as PACELINE_ADMIN_PASSWORD_HASH
func main() {
	password := flag.String("password", "", "password to hash")
	flag.Parse()

	if *password == "" {
		fmt.Println("usage: hash_password -password <password>")
		os.Exit(1)
	}

	hash, err := pkg.HashPassword(*password)
	if err != nil {
		fmt.Printf("failed to hash password: %s\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
