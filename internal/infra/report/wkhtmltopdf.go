package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// WkhtmltopdfConverter pipes the document through the wkhtmltopdf binary.
type WkhtmltopdfConverter struct {
	BinaryPath string
	Timeout    time.Duration
}

func (c *WkhtmltopdfConverter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	bin := c.BinaryPath
	if bin == "" {
		bin = "wkhtmltopdf"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf not available: %w", err)
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--quiet", "--encoding", "utf-8", "-", "-")
	cmd.Stdin = bytes.NewReader(html)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("wkhtmltopdf exit %d: %s", ee.ExitCode(), bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("run wkhtmltopdf: %w", err)
	}
	return stdout.Bytes(), nil
}
