package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"garagehub/internal/ai"
	"garagehub/internal/modules/garage"
	"garagehub/internal/modules/matching"
	"garagehub/internal/modules/vehicle"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logrus.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		logrus.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	issues, shops := garage.SampleCatalog()
	extractor := ai.NewSymptomExtractor(provider)

	description := "The car shakes when I stop at lights and there's a grinding noise every time I brake"
	if len(os.Args) > 1 {
		description = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("Owner: %s\n", description)

	symptoms, err := extractor.ExtractSymptoms(ctx, description, matching.KnownSymptoms(issues))
	if err != nil {
		logrus.Fatalf("Error extracting symptoms: %v", err)
	}
	fmt.Printf("Symptoms: %s\n", strings.Join(symptoms, ", "))

	car := vehicle.Vehicle{Make: "Toyota", Model: "Camry", Year: 2019, FuelType: vehicle.FuelGasoline}
	engine := matching.NewEngine(shops, issues)
	for _, m := range engine.SearchBySymptoms(car, symptoms) {
		fmt.Printf("\n%s (%d shops)\n", m.Issue.Name, len(m.Results))
		for _, r := range m.Results {
			fmt.Printf("  %-28s match=%3.0f%% cost=$%.0f-$%.0f\n",
				r.Shop.Name, r.MatchScore, r.EstimatedCost.Min, r.EstimatedCost.Max)
		}
	}
}
