package clifmt

import (
	"fmt"
	"os"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

var colorDisabled = os.Getenv("NO_COLOR") != ""

func colorize(code, s string) string {
	if colorDisabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

func Headerf(format string, args ...any) string {
	return colorize(ansiBold, fmt.Sprintf(format, args...))
}

func Key(s string) string {
	return colorize(ansiCyan, s)
}

func Dim(s string) string {
	return colorize(ansiDim, s)
}

func Success(s string) string {
	return colorize(ansiGreen, s)
}

func Warn(s string) string {
	return colorize(ansiYellow, s)
}
