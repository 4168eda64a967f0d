package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type jsonlWriter struct {
	file   io.WriteCloser
	writer *bufio.Writer
}

// newJSONLWriter opens path for JSON lines. "-" or "" writes to stdout.
func newJSONLWriter(path string, appendMode bool) (*jsonlWriter, error) {
	if path == "" || path == "-" {
		return &jsonlWriter{file: nopCloser{os.Stdout}, writer: bufio.NewWriter(os.Stdout)}, nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &jsonlWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *jsonlWriter) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeOne writes a single JSON line to path.
func writeOne(path string, value interface{}) error {
	w, err := newJSONLWriter(path, false)
	if err != nil {
		return err
	}
	if err := w.Write(value); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
