// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// inkctl moves the embedded-store records of one user in and out of a
// backup document.
//
//	inkctl [flags] export <userID> [file]
//	inkctl [flags] import <file>
//
// Storage flags and environment variables are the same as for inkd. Without
// a file, export writes the document to stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-ink-keeper/internal/config"
	"github.com/MKhiriev/go-ink-keeper/internal/logger"
	"github.com/MKhiriev/go-ink-keeper/internal/service"
	"github.com/MKhiriev/go-ink-keeper/internal/store"
	"github.com/MKhiriev/go-ink-keeper/models"
)

const logFile = "inkctl.log"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var (
	errUsage          = errors.New("usage: inkctl [flags] export <userID> [file] | import <file>")
	errMalformedInput = errors.New("malformed backup document, nothing was imported")
)

func main() {
	log, err := logger.NewFileLogger("inkctl", logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s, logging to stderr: %v\n", logFile, err)
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, nil, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = run(ctx, services.Data, cfg.Args, os.Stdin, os.Stdout); err != nil {
		log.Err(err).Strs("args", cfg.Args).Msg("inkctl failed")
		fmt.Fprintln(os.Stderr, err)
		storages.Close()
		os.Exit(1)
	}
}

// backups is the part of the data service inkctl drives.
type backups interface {
	ExportAll(ctx context.Context, userID string) (models.BackupDocument, error)
	ImportAll(ctx context.Context, document []byte) bool
}

func run(ctx context.Context, data backups, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "export":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		out := stdout
		if len(args) == 3 {
			f, err := os.Create(args[2])
			if err != nil {
				return fmt.Errorf("error creating %s: %w", args[2], err)
			}
			defer f.Close()
			out = f
		}
		return exportBackup(ctx, data, args[1], out)
	case "import":
		if len(args) != 2 {
			return errUsage
		}
		in := stdin
		if args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("error opening %s: %w", args[1], err)
			}
			defer f.Close()
			in = f
		}
		return importBackup(ctx, data, in)
	default:
		return errUsage
	}
}

func exportBackup(ctx context.Context, data backups, userID string, out io.Writer) error {
	doc, err := data.ExportAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("error exporting %s: %w", userID, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func importBackup(ctx context.Context, data backups, in io.Reader) error {
	document, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("error reading backup: %w", err)
	}
	if !data.ImportAll(ctx, document) {
		return errMalformedInput
	}
	return nil
}
