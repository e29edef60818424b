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
	if err := runLink(os.Args[1:]); err != nil {
		log.Fatalf("provision link: %v", err)
	}
}

func runLink(args []string) error {
	fs := flag.NewFlagSet("provision-link", flag.ExitOnError)
	homeSlug := fs.String("page", "", "Page slug to link (defaults to the space start page)")
	weddingPrefix := fs.String("wedding-prefix", "real-weddings", "Folder slug wedding records live under")
	relink := fs.Bool("relink", false, "Re-match cards that already carry a link")
	publish := fs.Bool("publish", false, "Publish the page after writing links")
	dryRun := fs.Bool("dry-run", false, "Report the matches without writing")
	region := fs.String("region", "", "Content store region (defaults to CONTENTSTORE_REGION)")
	space := fs.String("space", "", "Content store space ID (defaults to CONTENTSTORE_SPACE_ID)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{Region: *region, SpaceID: *space})
	if err != nil {
		return err
	}

	handler := provision.NewLinkGalleryHandler(module.Management, module.Logger)
	return handler.Execute(context.Background(), provision.LinkGalleryCommand{
		HomeSlug:      *homeSlug,
		WeddingPrefix: *weddingPrefix,
		Relink:        *relink,
		Publish:       *publish,
		DryRun:        *dryRun,
	})
}
