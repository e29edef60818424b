package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rumriverbarn/venuesite/cmd/provision/internal/bootstrap"
	"github.com/rumriverbarn/venuesite/internal/commands/provision"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPublish(os.Args[1:]); err != nil {
		log.Fatalf("provision publish: %v", err)
	}
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("provision-publish", flag.ExitOnError)
	slugs := fs.String("slugs", "", "Comma separated full slugs to publish")
	region := fs.String("region", "", "Content store region (defaults to CONTENTSTORE_REGION)")
	space := fs.String("space", "", "Content store space ID (defaults to CONTENTSTORE_SPACE_ID)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed := bootstrap.SplitSlugs(*slugs)
	if len(parsed) == 0 {
		return fmt.Errorf("-slugs is required")
	}

	module, err := moduleBuilder(bootstrap.Options{Region: *region, SpaceID: *space})
	if err != nil {
		return err
	}

	handler := provision.NewPublishSetHandler(module.Management, module.Logger)
	return handler.Execute(context.Background(), provision.PublishSetCommand{Slugs: parsed})
}
