package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out io.Writer
	Err io.Writer
}

// NewFormatter reads the --json and --quiet flags of cmd
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers the agent-friendly flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
	cmd.MarkFlagsMutuallyExclusive("json", "quiet")
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs a successful result. Quiet mode prints id alone,
// JSON mode wraps data in an envelope, otherwise human renders it.
func (f *OutputFormatter) Success(data any, id string, human func(w io.Writer) error) error {
	if f.Quiet {
		if id != "" {
			_, err := fmt.Fprintln(f.out(), id)
			return err
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if human == nil {
		_, err := fmt.Fprintf(f.out(), "%+v\n", data)
		return err
	}
	return human(f.out())
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped with its exit code
func (f *OutputFormatter) Fail(err error) error {
	code := ExitCodeFor(err)
	_ = f.ErrorWithSuggestion(errorCode(code), err.Error(), suggestionFor(err))
	return &ExitCodeError{Code: code, Err: err}
}

func errorCode(exit int) string {
	switch exit {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitValidation:
		return "VALIDATION_ERROR"
	default:
		return "ERROR"
	}
}

func suggestionFor(err error) string {
	switch {
	case errors.Is(err, models.ErrBoardNotFound):
		return "Use 'kanboard board list' to see available boards"
	case errors.Is(err, models.ErrColumnNotFound):
		return "Use 'kanboard board show <board>' to see its columns"
	case errors.Is(err, models.ErrTagNotFound):
		return "Use 'kanboard tag list --board <board>' to see available tags"
	default:
		return ""
	}
}
