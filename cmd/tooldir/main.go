// Command tooldir reads and appends tool directory entries stored in a
// Google spreadsheet or a local workbook. Settings come from SHEETSTORE_*
// environment variables; results are printed as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/config"
	"github.com/ideamans/go-sheetstore/directory"
	"github.com/ideamans/go-sheetstore/validation"
)

const usage = `usage: tooldir <command> [flags]

commands:
  list         list tools (-name, -tag, -uploader filters)
  get ID       show one tool
  add          submit a tool read as JSON from -file or stdin (-rating)
  reviews ID   list reviews of a tool
  review       add a review (-tool, -rating, -comment)
  examples ID  list examples of a tool
  example      add an example (-tool, -title, -description, -link, -file-url)
  collections  list collections of -user
  collect      create a collection (-name, -tools)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tooldir:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	dir, err := directory.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.String("user", "", "acting user id")

	out := json.NewEncoder(stdout)
	out.SetIndent("", "  ")

	switch cmd {
	case "list":
		name := fs.String("name", "", "tools whose name contains this text")
		tag := fs.String("tag", "", "tools carrying this tag")
		uploader := fs.String("uploader", "", "tools submitted by this user")
		if err := fs.Parse(args); err != nil {
			return err
		}
		var conds []sheetstore.Condition
		if *name != "" {
			conds = append(conds, sheetstore.Contains("name", *name))
		}
		if *tag != "" {
			conds = append(conds, sheetstore.Equal("tags", *tag))
		}
		if *uploader != "" {
			conds = append(conds, sheetstore.Equal("uploadedBy", *uploader))
		}
		tools, err := dir.ListTools(ctx, conds...)
		if err != nil {
			return err
		}
		return out.Encode(tools)

	case "get":
		id, err := oneArg(fs, args, "tool id")
		if err != nil {
			return err
		}
		tool, ok, err := dir.GetTool(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", directory.ErrToolNotFound, id)
		}
		return out.Encode(tool)

	case "add":
		file := fs.String("file", "", "JSON file with the tool (default: stdin)")
		rating := fs.String("rating", "", "overall rating from 1 to 5, overrides the file")
		if err := fs.Parse(args); err != nil {
			return err
		}
		in, err := readToolInput(*file, stdin)
		if err != nil {
			return err
		}
		if *rating != "" {
			if in.GeneralRating, err = validation.ParseRating(*rating); err != nil {
				return err
			}
		}
		tool, err := dir.SubmitTool(ctx, in, *user)
		if err != nil {
			return err
		}
		return out.Encode(tool)

	case "reviews":
		id, err := oneArg(fs, args, "tool id")
		if err != nil {
			return err
		}
		reviews, err := dir.ReviewsForTool(ctx, id)
		if err != nil {
			return err
		}
		return out.Encode(reviews)

	case "review":
		toolID := fs.String("tool", "", "reviewed tool id")
		rating := fs.Float64("rating", 0, "rating from 1 to 5")
		comment := fs.String("comment", "", "review text")
		if err := fs.Parse(args); err != nil {
			return err
		}
		review, err := dir.AddReview(ctx, validation.ReviewInput{ToolID: *toolID, Rating: *rating, Comment: *comment}, *user)
		if err != nil {
			return err
		}
		return out.Encode(review)

	case "examples":
		id, err := oneArg(fs, args, "tool id")
		if err != nil {
			return err
		}
		examples, err := dir.ExamplesForTool(ctx, id)
		if err != nil {
			return err
		}
		return out.Encode(examples)

	case "example":
		in := validation.ExampleInput{}
		fs.StringVar(&in.ToolID, "tool", "", "tool id")
		fs.StringVar(&in.Title, "title", "", "example title")
		fs.StringVar(&in.Description, "description", "", "what the example shows")
		fs.StringVar(&in.Link, "link", "", "link to the example")
		fs.StringVar(&in.FileURL, "file-url", "", "link to an attached file")
		if err := fs.Parse(args); err != nil {
			return err
		}
		example, err := dir.AddExample(ctx, in, *user)
		if err != nil {
			return err
		}
		return out.Encode(example)

	case "collections":
		if err := fs.Parse(args); err != nil {
			return err
		}
		collections, err := dir.CollectionsForUser(ctx, *user)
		if err != nil {
			return err
		}
		return out.Encode(collections)

	case "collect":
		name := fs.String("name", "", "collection name")
		tools := fs.String("tools", "", "comma separated tool ids")
		if err := fs.Parse(args); err != nil {
			return err
		}
		in := validation.CollectionInput{Name: *name, ToolIDs: sheetstore.SplitList(*tools)}
		collection, err := dir.CreateCollection(ctx, in, *user)
		if err != nil {
			return err
		}
		return out.Encode(collection)
	}

	fmt.Fprint(stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func oneArg(fs *flag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", fmt.Errorf("%s: expected one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func readToolInput(path string, stdin io.Reader) (validation.ToolInput, error) {
	var in validation.ToolInput

	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("failed to open tool file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("failed to parse tool JSON: %w", err)
	}
	return in, nil
}
