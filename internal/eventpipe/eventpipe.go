// Package eventpipe implements a named-pipe binary semaphore used to
// hand off control between the recorder/replayer process and the frame
// materializer driving the external terminal emulator.
package eventpipe

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is one end of a named-pipe semaphore. Signal writes a single byte;
// Wait blocks until one arrives.
type File struct {
	pipe *os.File
	path string
}

// Create makes a new FIFO at path and opens it read-write in this process.
// An EEXIST error means a stale FIFO from a crashed run is sitting there;
// that is treated as fatal rather than silently reused.
func Create(path string) (*File, error) {
	if err := unix.Mkfifo(path, 0600); err != nil {
		if err == unix.EEXIST {
			return nil, fmt.Errorf("%s already exists, maybe it is a leftover from a crashed termrec run", path)
		}
		return nil, fmt.Errorf("mkfifo %s: %w", path, err)
	}
	pipe, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open pipe used for eventpipe.File: %w", err)
	}
	return &File{pipe: pipe, path: path}, nil
}

// Connect opens an existing FIFO created by Create in another process and
// unlinks the directory entry; the open file descriptor keeps working after
// unlink, so the FIFO leaves no trace once both ends have opened it.
func Connect(path string) (*File, error) {
	pipe, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open pipe used for eventpipe.File: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("unlink the pipe: %w", err)
	}
	return &File{pipe: pipe, path: path}, nil
}

// Path returns the filesystem path used to create or connect this pipe.
func (f *File) Path() string {
	return f.path
}

// Signal wakes one pending Wait call on the other end.
func (f *File) Signal() error {
	if _, err := f.pipe.Write([]byte{'.'}); err != nil {
		return fmt.Errorf("eventpipe signal: %w", err)
	}
	return nil
}

// Wait blocks until a Signal arrives. Zero-length reads (which a FIFO can
// return when all writers briefly close, and which os.File reports as
// io.EOF) are not treated as an error here; the loop keeps waiting for an
// actual byte.
func (f *File) Wait() error {
	var buf [1]byte
	for {
		n, err := f.pipe.Read(buf[:])
		if err != nil && err != io.EOF {
			return fmt.Errorf("eventpipe wait: %w", err)
		}
		if n > 0 {
			return nil
		}
	}
}

// Close releases the underlying file descriptor.
func (f *File) Close() error {
	return f.pipe.Close()
}
