package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/kinds"
	"github.com/goliatone/go-coda/pkg/validation"
)

type violation struct {
	source  string
	kind    string
	message string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [dirs...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck that kind defaults satisfy their own constraints and templates render.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	ctx := context.Background()
	sources := flag.Args()

	var violations []violation
	if len(sources) == 0 {
		catalog, err := kinds.Defaults()
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint embedded kinds: %v\n", err)
			os.Exit(1)
		}
		violations = append(violations, lintCatalog(ctx, "embedded", catalog)...)
	}
	for _, dir := range sources {
		catalog, err := kinds.LoadFS(os.DirFS(dir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", dir, err)
			os.Exit(1)
		}
		violations = append(violations, lintCatalog(ctx, dir, catalog)...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].source == violations[j].source {
				if violations[i].kind == violations[j].kind {
					return violations[i].message < violations[j].message
				}
				return violations[i].kind < violations[j].kind
			}
			return violations[i].source < violations[j].source
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.source, v.kind, v.message)
		}
		os.Exit(1)
	}
}

func lintCatalog(ctx context.Context, source string, catalog *kinds.Catalog) []violation {
	validator := validation.New(validation.ModeDevelopment)
	var result []violation
	for _, name := range catalog.List() {
		kind, err := catalog.Get(name)
		if err != nil {
			result = append(result, violation{source: source, kind: name, message: err.Error()})
			continue
		}
		inst := component.New(kind, nil, component.WithValidator(validator))
		for _, issue := range inst.Diagnostics() {
			result = append(result, violation{source: source, kind: name, message: "default " + issue.String()})
		}
		if _, err := inst.Render(ctx); err != nil {
			result = append(result, violation{source: source, kind: name, message: err.Error()})
		}
	}
	return result
}
