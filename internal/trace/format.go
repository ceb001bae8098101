package trace

import (
	"strconv"
	"strings"
)

const (
	// header opens the traceEvents array with an empty object so every record
	// can be written with a leading comma.
	header = `{"otherData": {},"traceEvents":[{}`
	footer = `]}`
)

// FormatProfile renders one span as a Chrome complete ("X") event, including
// the leading comma that separates it from the previous event.
//
// Double quotes in the name are replaced with single quotes. No other escaping
// is done, so backslashes or control characters in a name make the output
// invalid JSON.
func FormatProfile(r ProfileResult) []byte {
	return AppendProfile(make([]byte, 0, 128+len(r.Name)), r)
}

// AppendProfile appends the rendering of r to dst and returns the extended buffer.
func AppendProfile(dst []byte, r ProfileResult) []byte {
	dst = append(dst, `,{"cat":"function","dur":`...)
	dst = strconv.AppendFloat(dst, float64(r.ElapsedMicros()), 'f', 3, 64)
	dst = append(dst, `,"name":"`...)
	dst = append(dst, escapeName(r.Name)...)
	dst = append(dst, `","ph":"X","pid":0,"tid":`...)
	dst = append(dst, r.ThreadID.String()...)
	dst = append(dst, `,"ts":`...)
	dst = strconv.AppendFloat(dst, r.StartMicros(), 'f', 3, 64)
	dst = append(dst, '}')
	return dst
}

func escapeName(name string) string {
	if !strings.ContainsRune(name, '"') {
		return name
	}
	return strings.ReplaceAll(name, `"`, `'`)
}
