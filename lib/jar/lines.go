package jar

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSep   = ";"
	fieldCount = 6
	nullExpiry = "null"
)

// layouts accepted for the expiry field besides Unix seconds.
var expiryLayouts = []string{
	time.RFC3339,
	time.UnixDate,
	"Mon Jan 02 15:04:05 MST 2006",
}

// Marshal renders c as a single line without the trailing newline.
func Marshal(c Cookie) (string, error) {
	if c.Name == "" {
		return "", ErrEmptyName
	}
	fields := []string{c.Name, c.Value, c.Domain, c.Path}
	for _, f := range fields {
		if strings.ContainsAny(f, ";\r\n") {
			return "", fmt.Errorf("%w: cookie %q", ErrDelimiter, c.Name)
		}
	}

	expiry := nullExpiry
	if c.Expires != nil {
		expiry = strconv.FormatInt(c.Expires.Unix(), 10)
	}

	return strings.Join(append(fields, expiry, strconv.FormatBool(c.Secure)), fieldSep), nil
}

// Unmarshal parses a line produced by Marshal.
func Unmarshal(line string) (Cookie, error) {
	line = strings.TrimRight(line, "\r")
	fields := strings.Split(line, fieldSep)
	if len(fields) != fieldCount {
		return Cookie{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}
	if fields[0] == "" {
		return Cookie{}, ErrEmptyName
	}

	expires, err := parseExpiry(fields[4])
	if err != nil {
		return Cookie{}, err
	}

	secure, err := strconv.ParseBool(strings.TrimSpace(fields[5]))
	if err != nil {
		return Cookie{}, fmt.Errorf("jar: secure flag %q: %w", fields[5], err)
	}

	return Cookie{
		Name:    fields[0],
		Value:   fields[1],
		Domain:  fields[2],
		Path:    fields[3],
		Secure:  secure,
		Expires: expires,
	}, nil
}

func parseExpiry(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == nullExpiry {
		return nil, nil
	}

	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		if sec <= 0 || math.IsInf(sec, 0) || math.IsNaN(sec) {
			return nil, nil
		}
		whole, frac := math.Modf(sec)
		t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return &t, nil
	}

	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// time.Parse gives abbreviations it cannot resolve a zero offset
		if zone, offset := t.Zone(); offset == 0 && !utcZone(zone) {
			return nil, fmt.Errorf("jar: expiry %q: unknown time zone %q", s, zone)
		}
		t = t.UTC()
		return &t, nil
	}

	return nil, fmt.Errorf("jar: unrecognized expiry %q", s)
}

func utcZone(zone string) bool {
	switch zone {
	case "", "UTC", "GMT", "Z", "+0000":
		return true
	}
	return false
}

// Encoder writes cookies in the line format.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes every cookie and flushes. Nothing is written if any cookie
// fails to marshal.
func (e *Encoder) Encode(cookies []Cookie) error {
	lines := make([]string, 0, len(cookies))
	for _, c := range cookies {
		line, err := Marshal(c)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		if _, err := e.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return e.w.Flush()
}

// Decoder reads cookies in the line format.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads until EOF. The first malformed line aborts decoding with a
// *SyntaxError.
func (d *Decoder) Decode() ([]Cookie, error) {
	sc := bufio.NewScanner(d.r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []Cookie
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := Unmarshal(line)
		if err != nil {
			return nil, &SyntaxError{Line: n, Err: err}
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
