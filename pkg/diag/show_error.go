package diag

import (
	"fmt"
	"io"
)

// Variables controlling the style of messages.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Shower is implemented by errors that know how to display themselves with
// source context.
type Shower interface {
	Show(indent string) string
}

// ShowError shows an error. It uses the Show method if the error implements
// Shower, and uses Complain to print the error message otherwise.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s%s\n", messageStart, msg, messageEnd)
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}

// Messagef formats a message with the message highlight markers around it.
// It is used by the Show methods of error types.
func Messagef(format string, args ...any) string {
	return messageStart + fmt.Sprintf(format, args...) + messageEnd
}
