package ui

import (
	"fmt"
	"os"
	"strings"
)

// Warn prints a warning message.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an indented info message.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a title underlined to its width.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len([]rune(s))+2)))
}

func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints KvLine(key, value).
func Kv(key, value string) {
	fmt.Println(KvLine(key, value))
}

// KvLine pads key to a 12-column label followed by value.
func KvLine(key, value string) string {
	return KeyStyle.Render(fmt.Sprintf("  %-12s", key)) + " " + ValueStyle.Render(value)
}

// SkipLine formats one skipped task record under a warning.
func SkipLine(file, reason string) string {
	return Muted.Render(fmt.Sprintf("    %s: %s", file, reason))
}

// Alarm renders a bucket count, flagged when it is not zero.
func Alarm(n int, icon string) string {
	if n == 0 {
		return "0"
	}
	return Error.Render(fmt.Sprintf("%d %s", n, icon))
}
