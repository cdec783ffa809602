package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errMalformed marks input that could not be parsed; the user has already
// been told why.
var errMalformed = errors.New("malformed input")

// GetSimpleText prints prompt to w and reads a single line from reader. The
// line is trimmed. If EOF occurs after some input was read, the partial line
// is returned; EOF with nothing read returns io.EOF.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetInt reads an integer. Blank input returns ok == false when optional is
// set; otherwise blank and malformed input print message and return
// errMalformed.
func GetInt(reader *bufio.Reader, prompt string, w io.Writer, optional bool, message string) (n int64, ok bool, err error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, false, err
	}
	if s == "" && optional {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintln(w, message)
		return 0, false, errMalformed
	}
	return n, true, nil
}

// GetFloat is GetInt for decimal numbers.
func GetFloat(reader *bufio.Reader, prompt string, w io.Writer, optional bool, message string) (f float64, ok bool, err error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, false, err
	}
	if s == "" && optional {
		return 0, false, nil
	}
	f, err = strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintln(w, message)
		return 0, false, errMalformed
	}
	return f, true, nil
}
