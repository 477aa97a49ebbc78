package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/numio-ml/numio/diskfile"
	"github.com/numio-ml/numio/storage"
)

// dumpCmd reads raw typed scalars from any file and prints them, one per
// line. Useful for eyeballing headerless binary dumps.
func dumpCmd() *cli.Command {
	var (
		path      string
		dtypeName string
		offset    int
		count     int
		bigEndian bool
		text      bool
	)

	return &cli.Command{
		Name:  "dump",
		Usage: "Print typed scalars from a raw binary file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to file",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{Name: "type", Usage: "element type (int8, uint8, int16, int32, int64, float32, float64)", Value: "float32", Destination: &dtypeName},
			&cli.IntFlag{Name: "offset", Usage: "byte offset to start at", Destination: &offset},
			&cli.IntFlag{Name: "count", Usage: "number of values to print (0 = until end of file)", Destination: &count},
			&cli.BoolFlag{Name: "big-endian", Usage: "decode in big-endian order instead of native", Destination: &bigEndian},
			&cli.BoolFlag{Name: "text", Usage: "treat the file as a text-mode dump", Destination: &text},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			dtype, ok := storage.ParseDataType(dtypeName)
			if !ok {
				return cli.Exit(fmt.Sprintf("error: unknown element type %q", dtypeName), 1)
			}

			mode := "rb"
			if text {
				mode = "r"
			}
			f, err := diskfile.Open(path, mode)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			if bigEndian {
				f.BigEndianEncoding()
			}
			if err := f.Seek(int64(offset)); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			for i := 0; count == 0 || i < count; i++ {
				v, err := readValue(f, dtype)
				if err != nil {
					if errors.Is(err, diskfile.ErrEndOfStream) {
						break
					}
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				fmt.Println(v)
			}

			return nil
		},
	}
}

func readValue(f *diskfile.File, dtype storage.DataType) (any, error) {
	switch dtype {
	case storage.Int8:
		return f.ReadChar()
	case storage.Uint8:
		return f.ReadByte()
	case storage.Int16:
		return f.ReadShort()
	case storage.Int32:
		return f.ReadInt()
	case storage.Int64:
		return f.ReadLong()
	case storage.Float32:
		return f.ReadFloat()
	case storage.Float64:
		return f.ReadDouble()
	default:
		return nil, fmt.Errorf("unknown element type %s", dtype)
	}
}
