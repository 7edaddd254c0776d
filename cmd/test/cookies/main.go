package main

import (
	"fmt"
	"log"
	"os"

	"go-job-scraper/internal/browser"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: cookies <cookies.json>")
	}
	fmt.Println("🍪 Testing cookie loading...")

	cookies, err := browser.LoadCookies(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		if c.Domain != nil {
			fmt.Printf("Domain: %s\n", *c.Domain)
		}
		if c.Secure != nil {
			fmt.Printf("Secure: %t\n", *c.Secure)
		}
	}
}
