package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/skosovsky/mcplite"
)

// maxLineBytes bounds a single stdio message.
const maxLineBytes = 4 << 20

// ServeStdio reads newline-delimited JSON-RPC messages from r and writes one response
// line per message to w, in order. Blank lines are skipped. It returns nil at EOF and
// ctx.Err() once ctx is done; a message already being handled is finished first.
func ServeStdio(ctx context.Context, d *mcplite.Dispatcher, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bw := bufio.NewWriter(w)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		out := d.HandleBytes(ctx, line)
		if _, err := bw.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}
