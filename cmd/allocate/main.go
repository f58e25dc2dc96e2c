package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"fleet-allocation-service/internal/adapters/repositories"
	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/services"
)

// allocate solves one passenger count against a catalog file and prints the fleet.
//
//	allocate -passengers 22 -catalog data/catalog.yaml
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("allocate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	passengers := fs.Int("passengers", 0, "number of passengers to seat")
	catalogPath := fs.String("catalog", "data/catalog.yaml", "YAML catalog file")
	workers := fs.Int("workers", 1, "search workers; above 1 the outermost type is partitioned")
	maxNodes := fs.Int64("max-nodes", 0, "search node budget, 0 for unlimited")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	res, err := services.AllocateFleet(ctx,
		services.AllocateRequest{PassengerCount: *passengers},
		repositories.NewFileCatalogRepository(*catalogPath),
		services.Solver{MaxNodes: *maxNodes, Workers: *workers},
	)
	if errors.Is(err, domain.ErrInfeasible) {
		fmt.Fprintf(stdout, "infeasible: %d passengers cannot be seated by this catalog\n", *passengers)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "allocate: %v\n", err)
		return 2
	}

	if *asJSON {
		return printJSON(stdout, stderr, res)
	}
	printTable(stdout, res)
	return 0
}

type jsonLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Seats int    `json:"seats"`
}

type jsonResult struct {
	PassengerCount int        `json:"passenger_count"`
	SeatsUsed      int        `json:"seats_used"`
	Leftover       int        `json:"leftover"`
	VehiclesUsed   int        `json:"vehicles_used"`
	Assignment     []int      `json:"assignment"`
	Lines          []jsonLine `json:"lines"`
}

func printJSON(stdout, stderr io.Writer, res *services.AllocateResult) int {
	a := res.Allocation
	out := jsonResult{
		PassengerCount: a.PassengerCount,
		SeatsUsed:      a.SeatsUsed,
		Leftover:       a.Leftover,
		VehiclesUsed:   a.VehiclesUsed,
		Assignment:     a.Assignment,
	}
	for _, l := range a.Lines(res.Catalog) {
		out.Lines = append(out.Lines, jsonLine{ID: l.VehicleType.ID, Name: l.VehicleType.Name, Count: l.Count, Seats: l.Seats})
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "allocate: encode: %v\n", err)
		return 2
	}
	return 0
}

func printTable(w io.Writer, res *services.AllocateResult) {
	a := res.Allocation
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCAPACITY\tCOUNT\tSEATS")
	for _, l := range a.Lines(res.Catalog) {
		name := l.VehicleType.Name
		if name == "" {
			name = l.VehicleType.ID
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", name, l.VehicleType.Capacity, l.Count, l.Seats)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "passengers=%d seats=%d leftover=%d vehicles=%d\n",
		a.PassengerCount, a.SeatsUsed, a.Leftover, a.VehiclesUsed)
}
