package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/rumriverbarn/venuesite/cmd/provision/internal/bootstrap"
	"github.com/rumriverbarn/venuesite/internal/commands/provision"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSeed(os.Args[1:]); err != nil {
		log.Fatalf("provision seed: %v", err)
	}
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("provision-seed", flag.ExitOnError)
	directory := fs.String("dir", "seeds", "Directory holding markdown seed files")
	prefix := fs.String("prefix", "", "Folder slug seeded records live under, e.g. real-weddings")
	publish := fs.Bool("publish", false, "Publish each seeded story")
	dryRun := fs.Bool("dry-run", false, "Report what would change without writing")
	region := fs.String("region", "", "Content store region (defaults to CONTENTSTORE_REGION)")
	space := fs.String("space", "", "Content store space ID (defaults to CONTENTSTORE_SPACE_ID)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{Region: *region, SpaceID: *space})
	if err != nil {
		return err
	}

	handler := provision.NewSeedStoriesHandler(module.Management, module.Logger)
	return handler.Execute(context.Background(), provision.SeedStoriesCommand{
		Directory: *directory,
		Prefix:    *prefix,
		Publish:   *publish,
		DryRun:    *dryRun,
	})
}
