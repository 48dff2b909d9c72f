package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/happythoughts/happythoughts/internal/client"
)

var thoughts = []string{
	"Sunshine after three days of rain!",
	"Finally fixed the bug that haunted me all week.",
	"My cat learned to open the fridge. Send help.",
	"Coffee with an old friend this morning.",
	"Ran my first 10k without stopping!",
	"The bakery down the street gave me a free croissant.",
	"Grateful for patient code reviewers.",
	"Planted tomatoes today. Fingers crossed.",
	"Found a twenty in my winter jacket.",
	"Learned to say thank you in five languages.",
	"My plant is not dead. It is thriving, actually.",
	"Someone let me merge into traffic. Faith in humanity restored.",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Happy Thoughts server URL")
	maxLikes := flag.Int("max-likes", 8, "Maximum likes per thought")
	flag.Parse()

	if err := checkMaxLikes(*maxLikes); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	log.Printf("Seeding thoughts at %s...\n", *baseURL)

	ctx := context.Background()
	c := client.New(*baseURL)

	var ids []string
	for _, text := range thoughts {
		thought, err := c.CreateThought(ctx, text)
		if err != nil {
			log.Printf("✗ Failed to post thought: %v", err)
			continue
		}
		ids = append(ids, thought.ID)
		log.Printf("✓ Posted %s: %s", thought.ID, text)

		// Small delay to spread out createdAt times
		time.Sleep(50 * time.Millisecond)
	}

	likes := 0
	for _, id := range ids {
		n := rand.Intn(*maxLikes + 1)
		for i := 0; i < n; i++ {
			if err := c.LikeThought(ctx, id); err != nil {
				log.Printf("✗ Failed to like %s: %v", id, err)
				break
			}
			likes++
		}
	}
	log.Printf("✓ Added %d likes", likes)

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Thoughts: %d\n", len(ids))
	fmt.Printf("Likes:    %d\n", likes)
	fmt.Println("\nFeed at:", *baseURL+"/thoughts")
}

func checkMaxLikes(n int) error {
	if n < 0 {
		return fmt.Errorf("-max-likes must be 0 or more, got %d", n)
	}
	return nil
}
