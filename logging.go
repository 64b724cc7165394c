package tagstats

import (
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// CallerName derives a hierarchical logger name from the call stack:
// "<package>[.<type>][.<function>]". skip counts frames above the caller
// of CallerName: 0 names the calling function itself, 1 its caller, and
// so on. Returns "unknown" when the stack cannot be resolved that far.
func CallerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "unknown"
	}

	pkg, typ, name := splitFuncName(f.Name())
	parts := make([]string, 0, 3)
	if pkg != "" {
		parts = append(parts, pkg)
	}
	if typ != "" {
		parts = append(parts, typ)
	}
	if name != "" {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ".")
}

// NamedLogger returns base named after the function skip frames above the
// caller of NamedLogger (0 names the calling function). A nil base yields
// a no-op logger.
func NamedLogger(base *zap.Logger, skip int) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(CallerName(skip + 1))
}

// splitFuncName decomposes a runtime function name such as
// "github.com/acme/pkg.(*Service).Handle-fm" into its package, receiver
// type, and function components. Method-value and closure suffixes are
// normalized; closures keep their runtime funcN name with the enclosing
// function reported in the type position.
func splitFuncName(raw string) (pkg, typ, name string) {
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.TrimSuffix(raw, "-fm")

	parts := strings.Split(raw, ".")
	pkg = parts[0]
	switch len(parts) {
	case 1:
	case 2:
		name = parts[1]
	default:
		typ = strings.TrimSuffix(strings.TrimPrefix(parts[1], "(*"), ")")
		name = parts[len(parts)-1]
	}
	return pkg, typ, name
}
