package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"mocsize/cmd"
	"mocsize/pkg/logging"
	"mocsize/pkg/report"
	"mocsize/pkg/sizecheck"
	"mocsize/pkg/version"
)

func main() {
	err := cmd.Execute(context.Background())
	syncLogger()

	if err != nil {
		// The report already shows which entries are over budget.
		if !errors.Is(err, sizecheck.ErrBudgetExceeded) {
			fmt.Fprintf(os.Stderr, "[%s] %v\n", version.AppName, err)
		}
		os.Exit(report.ExitFailure)
	}
}

// syncLogger flushes the logger when stderr is a terminal or a regular file;
// syncing a pipe fails with "invalid argument" on some platforms.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
