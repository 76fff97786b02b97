package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docanalyzer/internal/core"
	"github.com/joseph-ayodele/docanalyzer/internal/export"
)

func parseOutput() (export.Format, error) {
	return export.ParseFormat(outputFormat)
}

// writeResult renders into memory first so a failed render leaves no partial file.
func writeResult(cmd *cobra.Command, format export.Format, res core.Result) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, res); err != nil {
		return err
	}

	dest := outPath
	if dest == "" && format == export.FormatXLSX {
		dest = export.DefaultFilename(res.Path, format)
	}
	if dest == "" || dest == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	logger.Info("export.write.ok", "path", dest, "format", string(format), "bytes", buf.Len())
	return nil
}
