package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"travelbuddy/internal/ai"
	"travelbuddy/internal/modules/generation"
)

func main() {
	_ = godotenv.Load()

	days := flag.Int("days", 0, "itinerary length in days")
	chat := flag.String("chat", "", "free-form question")
	transport := flag.String("transport", ai.TransportREST, "gemini transport: rest or sdk")
	dryRun := flag.Bool("dry-run", false, "print the routed model and prompt without calling Gemini")
	flag.Parse()

	in := generation.Input{}
	if *days != 0 {
		in.Days = days
	}
	if *chat != "" {
		in.Chat = chat
	}
	req := generation.Resolve(in)
	router := generation.NewRouter(generation.DefaultCity, "Karnataka", generation.Models{})

	if *dryRun {
		plan := router.Plan(req)
		fmt.Printf("Mode: %s\nModel: %s\n\n%s\n", plan.Mode, plan.Model, plan.Prompt)
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider, err := ai.New(ctx, *transport, apiKey, "")
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	svc := generation.NewService(provider, router, 0)
	res, err := svc.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Error generating: %v", err)
	}

	fmt.Printf("Mode: %s\nModel: %s\nFallback: %v\n\n%s\n", res.Mode, res.Model, res.Fallback, res.Text)
}
