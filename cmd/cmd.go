/*
Package cmd provides CLI functionality.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/covercore/covercore/internal"
	"github.com/fatih/color"
)

func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes the error to w. The permission that would have
// sufficed, if any, is written on a separate line.
func FprintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", color.HiRedString("Error:"), err.Error())

	var authErr *internal.AuthorizationError
	if errors.As(err, &authErr) && authErr.Permission != "" {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("Required permission:"), authErr.Permission)
	}
}
