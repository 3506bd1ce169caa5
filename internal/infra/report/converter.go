package report

import (
	"fmt"
	"time"
)

// NewConverter picks the PDF backend by name.
func NewConverter(name, binaryPath string, timeout time.Duration) (Converter, error) {
	switch name {
	case "", "chrome":
		return &ChromeConverter{ExecPath: binaryPath, Timeout: timeout}, nil
	case "wkhtmltopdf":
		return &WkhtmltopdfConverter{BinaryPath: binaryPath, Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("unknown report converter %q", name)
	}
}
