// Command memberset-dump decodes hex-encoded member set payloads, one per
// line of standard input, and logs their contents.
package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/kivigrid/internal/grpcutil"
	"github.com/maxpoletaev/kivigrid/memberset"
)

func main() {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	args := parseCliArgs()

	if !args.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	enc, err := memberset.ParseEncoding(args.encoding)
	if err != nil {
		level.Error(logger).Log("msg", "invalid encoding", "err", err)
		os.Exit(2)
	}

	failed, err := dump(os.Stdin, enc, args.messageIDs, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to read input", "err", err)
		os.Exit(1)
	}

	if failed > 0 {
		level.Error(logger).Log("msg", "some payloads could not be decoded", "failed", failed)
		os.Exit(1)
	}
}

// dump decodes every non-empty line of r and returns the number of lines
// that failed to decode.
func dump(r io.Reader, enc memberset.Encoding, withMessageIDs bool, logger kitlog.Logger) (int, error) {
	scanner := bufio.NewScanner(r)
	failed := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := dumpLine(line, enc, withMessageIDs, kitlog.With(logger, "line", lineNo)); err != nil {
			level.Error(logger).Log(
				"msg", "failed to decode payload",
				"line", lineNo,
				"code", grpcutil.ErrorCode(err),
				"err", err,
			)

			failed++
		}
	}

	return failed, scanner.Err()
}

func dumpLine(line string, enc memberset.Encoding, withMessageIDs bool, logger kitlog.Logger) error {
	raw, err := hex.DecodeString(line)
	if err != nil {
		return fmt.Errorf("%w: %v", memberset.ErrIllegalArgument, err)
	}

	r := bytes.NewReader(raw)

	p, err := memberset.Decode(r, enc, withMessageIDs)
	if err != nil {
		return fmt.Errorf("decode %s: %w", enc, err)
	}

	level.Info(logger).Log(
		"encoding", enc,
		"size", len(p.IDs),
		"ids", fmt.Sprint(p.IDs),
		"fingerprint", fmt.Sprintf("%016x", memberset.FingerprintWords(p.Words())),
	)

	if withMessageIDs {
		level.Debug(logger).Log("message_ids", fmt.Sprint(p.MessageIDs))
	}

	if r.Len() > 0 {
		level.Warn(logger).Log("msg", "trailing bytes after payload", "bytes", r.Len())
	}

	return nil
}
