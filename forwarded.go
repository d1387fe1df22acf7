package realip

import (
	"fmt"
	"strings"
)

// forwardedRecord holds the recognized parameters of one RFC 7239 Forwarded
// element. Unset parameters are empty strings.
type forwardedRecord struct {
	forValue string
	byValue  string
	proto    string
	host     string
}

// parseForwarded parses the first comma-separated element of a Forwarded
// header value into its for, by, proto, and host parameters.
//
// Parameter names are matched case-insensitively, values tolerate optional
// surrounding quotes, and unknown parameters are skipped. Splitting respects
// quoted strings, so a quoted value may contain commas and semicolons.
//
// Only the first element is consulted. Later elements describe hops further
// from this server and are intentionally ignored; reconstructing the full
// chain is out of scope here.
func parseForwarded(value string) (forwardedRecord, error) {
	var rec forwardedRecord

	element, err := firstSegment(value, ',')
	if err != nil {
		return forwardedRecord{}, err
	}

	params, err := splitUnquoted(element, ';')
	if err != nil {
		return forwardedRecord{}, err
	}
	if len(params) == 0 {
		return forwardedRecord{}, fmt.Errorf("%w: empty element", ErrMalformedForwarded)
	}

	seen := make(map[string]bool, 4)
	for _, param := range params {
		eq := strings.IndexByte(param, '=')
		if eq <= 0 {
			return forwardedRecord{}, fmt.Errorf("%w: parameter %q", ErrMalformedForwarded, param)
		}

		key := strings.ToLower(strings.TrimSpace(param[:eq]))
		val := strings.TrimSpace(param[eq+1:])
		val = trimWrapped(val, '"', '"')
		if val == "" {
			return forwardedRecord{}, fmt.Errorf("%w: empty value for %q", ErrMalformedForwarded, key)
		}

		switch key {
		case "for", "by", "proto", "host":
			if seen[key] {
				return forwardedRecord{}, fmt.Errorf("%w: duplicate parameter %q", ErrMalformedForwarded, key)
			}
			seen[key] = true
		default:
			// Extension parameters are allowed and skipped.
			continue
		}

		switch key {
		case "for":
			rec.forValue = val
		case "by":
			rec.byValue = val
		case "proto":
			rec.proto = val
		case "host":
			rec.host = val
		}
	}

	return rec, nil
}

// firstSegment returns the text before the first unquoted delimiter, or the
// whole value when the delimiter never occurs outside quotes.
func firstSegment(value string, delimiter byte) (string, error) {
	inQuotes := false

	for i := 0; i < len(value); i++ {
		switch {
		case value[i] == '"':
			inQuotes = !inQuotes
		case value[i] == delimiter && !inQuotes:
			return value[:i], nil
		}
	}

	if inQuotes {
		return "", fmt.Errorf("%w: unterminated quoted string in %q", ErrMalformedForwarded, value)
	}

	return value, nil
}

// splitUnquoted splits value on delimiter outside quoted strings, dropping
// empty segments.
func splitUnquoted(value string, delimiter byte) ([]string, error) {
	var segments []string
	start := 0
	inQuotes := false

	for i := 0; i <= len(value); i++ {
		if i < len(value) {
			if value[i] == '"' {
				inQuotes = !inQuotes
				continue
			}
			if value[i] != delimiter || inQuotes {
				continue
			}
		} else if inQuotes {
			return nil, fmt.Errorf("%w: unterminated quoted string in %q", ErrMalformedForwarded, value)
		}

		if segment := strings.TrimSpace(value[start:i]); segment != "" {
			segments = append(segments, segment)
		}
		start = i + 1
	}

	return segments, nil
}
