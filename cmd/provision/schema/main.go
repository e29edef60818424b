package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rumriverbarn/venuesite/cmd/provision/internal/bootstrap"
	"github.com/rumriverbarn/venuesite/internal/commands/provision"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSchema(os.Args[1:]); err != nil {
		log.Fatalf("provision schema: %v", err)
	}
}

func runSchema(args []string) error {
	fs := flag.NewFlagSet("provision-schema", flag.ExitOnError)
	file := fs.String("file", "", "Path to a JSON file holding the component definition")
	name := fs.String("name", "", "Component name (overrides the file's name field)")
	displayName := fs.String("display-name", "", "Editor-facing component label")
	isRoot := fs.Bool("root", false, "Mark the component as usable as a page root")
	isNestable := fs.Bool("nestable", true, "Mark the component as embeddable inside other blocks")
	region := fs.String("region", "", "Content store region (defaults to CONTENTSTORE_REGION)")
	space := fs.String("space", "", "Content store space ID (defaults to CONTENTSTORE_SPACE_ID)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	definition, err := loadComponentFile(*file)
	if err != nil {
		return err
	}
	if *name != "" {
		definition.Name = *name
	}
	if *displayName != "" {
		definition.DisplayName = *displayName
	}
	definition.IsRoot = *isRoot
	definition.IsNestable = *isNestable

	module, err := moduleBuilder(bootstrap.Options{Region: *region, SpaceID: *space})
	if err != nil {
		return err
	}

	handler := provision.NewCreateComponentHandler(module.Management, module.Logger)
	return handler.Execute(context.Background(), *definition)
}

// loadComponentFile reads a component definition: either a bare schema
// object or a full command payload with name and schema fields.
func loadComponentFile(path string) (*provision.CreateComponentCommand, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read component file: %w", err)
	}

	var definition provision.CreateComponentCommand
	if err := json.Unmarshal(raw, &definition); err != nil {
		return nil, fmt.Errorf("parse component file: %w", err)
	}
	if definition.Schema == nil {
		var schema map[string]any
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("parse component schema: %w", err)
		}
		definition.Schema = schema
	}
	return &definition, nil
}
