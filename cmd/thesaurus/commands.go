package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/thesaurus"
	"github.com/poiesic/thesaurus/config"
	"github.com/poiesic/thesaurus/core"
	"github.com/urfave/cli/v2"
)

func openDatabase(c *cli.Context, opts ...thesaurus.DatabaseOption) (*thesaurus.Database, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	db, err := thesaurus.NewDatabase(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func initCommand(c *cli.Context) error {
	path := c.String("out")
	if err := config.DefaultConfig().SaveToFile(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote default configuration to %s\n", path)
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("thesaurus file is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	im, err := db.NewImporter()
	if err != nil {
		return err
	}
	result, err := im.ImportFile(ctx, path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d facets, %d groups and %d concepts (%d replaced)\n",
		result.Facets, result.Groups, result.Concepts, result.Replaced)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	concepts, err := db.ConceptRepository().GetAllConcepts(ctx)
	if err != nil {
		return err
	}

	for _, concept := range concepts {
		fmt.Fprintf(c.App.Writer, "%d\t%s", concept.Id, concept.Name())
		if labels := concept.Labels(); len(labels) > 1 {
			fmt.Fprintf(c.App.Writer, "\t(%s)", strings.Join(labels[1:], ", "))
		}
		fmt.Fprintln(c.App.Writer)
	}
	return nil
}

func tagCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	id := core.ID(c.Uint64("id"))
	if label := c.String("label"); label != "" {
		concept, err := db.ConceptRepository().FindConceptByLabel(ctx, label)
		if err != nil {
			return fmt.Errorf("concept %q: %w", label, err)
		}
		id = concept.Id
	}
	if id == 0 {
		return fmt.Errorf("either --id or --label is required")
	}

	_, messages, err := db.TagConcept(ctx, id)
	if err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}
	for _, msg := range messages {
		fmt.Fprintln(c.App.Writer, msg)
	}
	return nil
}

func tagAllCommand(c *cli.Context) error {
	ctx := context.Background()

	var opts []thesaurus.DatabaseOption
	if c.Bool("progress") {
		opts = append(opts, thesaurus.WithProgress(os.Stderr))
	}
	db, err := openDatabase(c, opts...)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := db.TagAll(ctx)
	if err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}

	fmt.Fprintln(c.App.Writer, report.Text())
	if report.Failed > 0 {
		return fmt.Errorf("%d concepts failed: %w", report.Failed, report.Err())
	}
	return nil
}

func addLabelCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	concept, err := db.AddLabel(ctx, core.ID(c.Uint64("id")), c.String("relation"), c.String("label"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added %s %q to concept %q\n", c.String("relation"), strings.TrimSpace(c.String("label")), concept.Name())
	return nil
}
