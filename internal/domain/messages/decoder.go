package messages

import (
	"fmt"
	"strings"
	"time"
)

// Markers delimiting the fields inside one raw message blob.
const (
	headerMarker   = "Lugar y fecha:"
	userMarker     = "Usuario:"
	platformMarker = "Red social:"
)

// timestampLayout is zero-padded day/month/year, 24-hour clock.
const timestampLayout = "02/01/2006 15:04"

// Decoded holds the structured fields extracted from one raw message blob.
type Decoded struct {
	Timestamp time.Time
	User      string
	Platform  string
	Body      string
}

// Decode parses one raw message blob into its structured fields.
//
// Grammar: a header segment and a body segment separated by the user marker.
// The header, after stripping the "Lugar y fecha:" label, ends with a
// comma-separated dd/mm/yyyy hh:mm timestamp. After the user marker comes the
// user name, then the platform marker; the first whitespace-delimited token
// after it is the platform, and everything past the first platform marker
// (later recurrences of the marker included verbatim) is the body.
//
// Decoding is all-or-nothing: any missing marker or malformed timestamp
// returns an error wrapping ErrDecode and no partial result.
func Decode(raw string) (Decoded, error) {
	header, rest, ok := strings.Cut(raw, userMarker)
	if !ok {
		return Decoded{}, fmt.Errorf("%w: missing %q marker", ErrDecode, userMarker)
	}

	ts, err := decodeTimestamp(header)
	if err != nil {
		return Decoded{}, err
	}

	user, remainder, ok := strings.Cut(strings.TrimSpace(rest), platformMarker)
	if !ok {
		return Decoded{}, fmt.Errorf("%w: missing %q marker", ErrDecode, platformMarker)
	}

	platform, err := decodePlatform(remainder)
	if err != nil {
		return Decoded{}, err
	}

	return Decoded{
		Timestamp: ts,
		User:      strings.TrimSpace(user),
		Platform:  platform,
		Body:      strings.TrimSpace(remainder),
	}, nil
}

// decodeTimestamp strips the header label and parses the date/time token
// after the last comma.
func decodeTimestamp(header string) (time.Time, error) {
	header = strings.TrimSpace(strings.ReplaceAll(header, headerMarker, ""))
	if i := strings.LastIndex(header, ","); i >= 0 {
		header = header[i+1:]
	}
	ts, err := time.Parse(timestampLayout, strings.TrimSpace(header))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp: %v", ErrDecode, err)
	}
	return ts, nil
}

// decodePlatform takes the first whitespace-delimited token after the
// platform marker.
func decodePlatform(remainder string) (string, error) {
	fields := strings.Fields(remainder)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: missing platform after %q marker", ErrDecode, platformMarker)
	}
	return fields[0], nil
}
