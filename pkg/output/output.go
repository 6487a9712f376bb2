package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/zfogg/uploadfile/pkg/config"
	uperrors "github.com/zfogg/uploadfile/pkg/errors"
	"github.com/zfogg/uploadfile/pkg/upload"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// Writer receives all output. Color codes are dropped automatically when
// it is not a terminal.
var Writer io.Writer = color.Output

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	if config.GetString("output.format") == "json" {
		return FormatJSON
	}
	return FormatText
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "text"
}

// outcomeRecord is the JSON rendering of an upload outcome
type outcomeRecord struct {
	OK         bool        `json:"ok"`
	Status     int         `json:"status,omitempty"`
	Response   interface{} `json:"response,omitempty"`
	Kind       string      `json:"kind,omitempty"`
	Error      string      `json:"error,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// PrintOutcome renders an upload outcome in the configured format
func PrintOutcome(o upload.Outcome) error {
	if GetOutputFormat() == FormatJSON {
		return printOutcomeJSON(o)
	}
	return printOutcomeText(o)
}

func printOutcomeJSON(o upload.Outcome) error {
	record := outcomeRecord{OK: o.OK(), Status: o.StatusCode}
	if o.OK() {
		record.Response = o.Value
	} else {
		record.Kind = string(o.Kind())
		record.Error = o.Message()
		record.Suggestion = o.Err.Suggestion
	}

	jsonStr, err := FormatAsPrettyJSON(record)
	if err != nil {
		return err
	}
	fmt.Fprintln(Writer, jsonStr)
	return nil
}

func printOutcomeText(o upload.Outcome) error {
	if !o.OK() {
		PrintError("%s", strings.TrimRight(uperrors.FormatError(o.Err), "\n"))
		return nil
	}

	if o.StatusCode > 0 {
		PrintSuccess("Upload succeeded (HTTP %d)", o.StatusCode)
	} else {
		PrintSuccess("Upload succeeded")
	}

	jsonStr, err := FormatAsPrettyJSON(o.Value)
	if err != nil {
		return err
	}
	fmt.Fprintln(Writer, jsonStr)
	return nil
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	colored := color.New(color.FgGreen)
	colored.Fprintf(Writer, msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	colored := color.New(color.FgRed)
	colored.Fprintf(Writer, "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	colored := color.New(color.FgCyan)
	colored.Fprintf(Writer, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	colored := color.New(color.FgYellow)
	colored.Fprintf(Writer, "Warning: "+msg+"\n", args...)
}

// FormatAsPrettyJSON converts data to an indented JSON string
func FormatAsPrettyJSON(data interface{}) (string, error) {
	jsonData, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}
