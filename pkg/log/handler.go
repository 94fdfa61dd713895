package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// appendFields writes key/value pairs into a zerolog context or event. An error value is
// written with AnErr and, when it carries a cockroachdb/errors stack, an extra stacktrace
// field. A trailing key without a value is written under "!BADKEY" as slog does.
func appendFields[T interface {
	Interface(string, interface{}) T
	AnErr(string, error) T
	Str(string, string) T
	Object(string, zerolog.LogObjectMarshaler) T
}](dst T, fields []any) T {
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			dst = dst.Interface("!BADKEY", fields[i])
			break
		}
		key := fmt.Sprint(fields[i])
		switch value := fields[i+1].(type) {
		case error:
			dst = dst.AnErr(key, value)
			if stacktrace := extractStacktrace(value); stacktrace != "" {
				dst = dst.Str(StacktraceAttrKey, stacktrace)
			}
		case zerolog.LogObjectMarshaler:
			dst = dst.Object(key, value)
		default:
			dst = dst.Interface(key, value)
		}
	}
	return dst
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
