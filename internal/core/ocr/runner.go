package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

const stderrLogCap = 8 << 10

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, logger *slog.Logger, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs binaries found on PATH (or absolute paths).
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	start := time.Now()
	logger.Debug("exec.start", "cmd_line", strings.Join(append([]string{name}, args...), " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		logger.Error("exec.failed",
			"cmd", name,
			"duration_ms", elapsed,
			"error", err,
			"stderr", truncate(errb.String(), stderrLogCap),
		)
		return out.Bytes(), errb.Bytes(), err
	}
	logger.Debug("exec.ok",
		"cmd", name,
		"duration_ms", elapsed,
		"stdout_bytes", out.Len(),
		"stderr_bytes", errb.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

// installHints names the package that ships each external tool.
var installHints = map[string]string{
	"pdftotext": "poppler-utils",
	"pdftoppm":  "poppler-utils",
	"tesseract": "tesseract-ocr",
}

// toolError turns a failed run of tool into an external service error that
// says whether the binary is missing, the run was cancelled, or it exited badly.
func toolError(ctx context.Context, tool string, stderr []byte, err error) error {
	base := filepath.Base(tool)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		msg := base + " not found on PATH"
		if pkg, ok := installHints[base]; ok {
			msg += fmt.Sprintf(" (install %s)", pkg)
		}
		return common.NewExternalServiceError(msg, err)
	case ctx.Err() != nil:
		return common.NewExternalServiceError(base+" interrupted", ctx.Err())
	}
	msg := base + " failed"
	if s := strings.TrimSpace(string(stderr)); s != "" {
		msg += ": " + truncate(s, 512)
	}
	return common.NewExternalServiceError(msg, err)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
