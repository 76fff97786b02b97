package ocr

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

// PageCount reads the page count with pdfcpu. A file pdfcpu cannot parse is an input error.
func PageCount(pdfPath string) (count int, err error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, common.NewInputError("cannot open "+pdfPath, err)
	}
	defer f.Close()

	// pdfcpu panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = common.NewInputError(pdfPath+" is not a readable PDF", fmt.Errorf("pdfcpu panic: %v", r))
		}
	}()

	count, err = api.PageCount(f, nil)
	if err != nil {
		return 0, common.NewInputError(pdfPath+" is not a readable PDF", err)
	}
	if count <= 0 {
		return 0, common.NewInputError(pdfPath+" has no pages", nil)
	}
	return count, nil
}
