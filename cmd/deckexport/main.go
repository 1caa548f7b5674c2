package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/VantageDataChat/GoDeck/config"
	"github.com/VantageDataChat/GoDeck/export"
)

func main() {
	in := flag.String("in", "", "deck JSON file (- for stdin)")
	out := flag.String("out", "", "output .pptx path (default: derived from the deck title)")
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: deckexport -in deck.json [-out deck.pptx] [-env .env]")
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	log := cfg.NewLogger()

	var data []byte
	if *in == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*in)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exporter := export.NewExporter(export.OptionsFromConfig(cfg), log)
	report, err := exporter.ExportJSON(ctx, data, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d slides (%d components, %d placeholders, %d failures)\n",
		report.Slides, report.Components, report.Placeholders, len(report.Failures))
	for _, f := range report.Failures {
		fmt.Printf("  %v\n", f)
	}
}
