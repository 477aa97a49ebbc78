package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/numio-ml/numio/internal/archive"
	"github.com/numio-ml/numio/internal/logger"
)

func inspectCmd() *cli.Command {
	var (
		path         string
		showMetadata bool
		skipChecksum bool
		verbose      bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect the contents of a numio archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to archive",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{Name: "metadata", Usage: "show all metadata key/values", Destination: &showMetadata},
			&cli.BoolFlag{Name: "skip-checksum", Usage: "skip data checksum validation", Destination: &skipChecksum},
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging", Destination: &verbose},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log := logger.Text(os.Stderr, level)

			log.Debug("opening archive", "path", path, "skip_checksum", skipChecksum)
			r, err := archive.NewReaderWithOptions(path, archive.ReaderOptions{
				SkipChecksumValidation: skipChecksum,
				ValidationLevel:        archive.ValidationStrict,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open archive: %v", err), 1)
			}
			defer func() { _ = r.Close() }()

			header := r.Header()
			fmt.Printf("File: %s\n", path)
			fmt.Printf("numio archive v%d | numio=%s | storages=%d | id=%s | created=%s\n",
				header.FormatVersion, header.NumioVersion, len(header.Storages),
				header.FileID, header.CreatedAt.Format("2006-01-02 15:04:05"))

			fmt.Println()
			fmt.Println("Storages:")
			for _, meta := range header.Storages {
				fmt.Printf("  %-32s %-8s len=%-10d offset=%-10d size=%d\n",
					meta.Name, meta.DType, meta.Length, meta.Offset, meta.Size)
			}

			if showMetadata && len(header.Metadata) > 0 {
				keys := make([]string, 0, len(header.Metadata))
				for k := range header.Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				fmt.Println()
				fmt.Println("Metadata:")
				for _, k := range keys {
					fmt.Printf("  %s = %s\n", k, header.Metadata[k])
				}
			}

			return nil
		},
	}
}
