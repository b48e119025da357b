// Package iojson reads and writes JSON documents from a command line
// interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the file named by its flag. A path of "-"
// reads stdin.
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin is read for "-". Defaults to os.Stdin.
	Stdin *os.File
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       `path to JSON file ("-" reads from stdin)`,
		Destination: &fr.fileFlagValue,
	}
}

// IsSet reports whether a file was given.
func (fr *FileReader[T]) IsSet() bool {
	return fr.fileFlagValue != ""
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader, closer, err := fr.open()
	if err != nil {
		return input, err
	}
	defer closer()

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	if fr.fileFlagValue != "-" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	stdin := fr.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, nil, fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe JSON input")
	}
	return stdin, func() {}, nil
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// on ew as a JSON error document.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errBytes, _ := json.Marshal(err.Error())
		_, err = fmt.Fprintf(ew, `{"message":"error marshaling in iojson.WriteWith","data":{"json_error":%s}}`+"\n", errBytes)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
