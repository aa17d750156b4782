package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/validly/saas-validator/internal/config"
	"github.com/validly/saas-validator/internal/models"
	"github.com/validly/saas-validator/internal/validation"
)

// consoleNotifier prints the completion notice instead of emailing it
type consoleNotifier struct{}

func (n *consoleNotifier) SendValidationComplete(email string, result *models.ValidationResult) error {
	fmt.Printf("\n📧 Would notify %s: %s scored %d/100\n", email, result.IdeaName, result.OverallScore)
	return nil
}

func main() {
	output := flag.String("output", "", "write the full result as JSON to this file")
	keywords := flag.String("keywords", "", "comma-separated keywords (derived from the idea when empty)")
	email := flag.String("email", "", "print a completion notice for this address")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: validate [flags] \"your saas idea\"")
		flag.PrintDefaults()
		os.Exit(2)
	}
	idea := strings.Join(flag.Args(), " ")

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.WarnLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	req := validation.Request{
		Idea:        idea,
		NotifyEmail: *email,
	}
	if *keywords != "" {
		for _, keyword := range strings.Split(*keywords, ",") {
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				req.Keywords = append(req.Keywords, keyword)
			}
		}
	}

	fmt.Printf("🔍 Validating: %s\n", idea)
	fmt.Println(strings.Repeat("=", 50))

	service := validation.NewService(cfg, nil, &consoleNotifier{})
	result, err := service.Validate(context.Background(), req)
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	printResult(result)

	if *output != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to serialize result: %v", err)
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", *output, err)
		}
		fmt.Printf("\n💾 Full result written to %s\n", *output)
	}
}

func printResult(result *models.ValidationResult) {
	fmt.Printf("\n📊 OVERALL SCORE: %d/100\n", result.OverallScore)
	fmt.Printf("🏆 VERDICT: %s\n", result.Verdict)

	if len(result.PlatformsAnalyzed) > 0 {
		fmt.Println("\n📍 Platform scores:")
		for _, platform := range result.PlatformsAnalyzed {
			summary := result.Summary(platform)
			if summary == nil {
				continue
			}
			fmt.Printf("   • %s: %d/100 (%d records, %d pain points)\n",
				platform, summary.Score, summary.RecordsFound, summary.PainPoints)
		}
	}

	if len(result.KeyInsights) > 0 {
		fmt.Println("\n💡 Key insights:")
		for _, insight := range result.KeyInsights {
			fmt.Printf("   • %s\n", insight)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Println("\n📝 Recommendations:")
		for _, recommendation := range result.Recommendations {
			fmt.Printf("   • %s\n", recommendation)
		}
	}
}
