package log

const colorReset = "\033[0m"

// Color returns the ANSI escape used to prefix lines of level l.
func Color(l LogLevel) string {
	switch l {
	case Debug:
		return "\033[90m"
	case Info:
		return "\033[36m"
	case Warn:
		return "\033[33m"
	case Error, Fatal:
		return "\033[31m"
	default:
		return colorReset
	}
}
