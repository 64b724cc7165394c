package tagstats

import (
	"fmt"
	"strings"
)

// Tag is a single key/value annotation appended to every metric name
// emitted through a Client.
type Tag struct {
	Key   string
	Value string
}

// NewTag builds a Tag from an arbitrary value using a total string
// conversion. It never fails; non-string values are rendered with fmt.Sprint.
func NewTag(key string, value interface{}) Tag {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	return Tag{Key: key, Value: s}
}

// Tags is an insertion-ordered set of tags. The zero value is usable.
// Order is significant: it is preserved into the composed metric name.
type Tags []Tag

// String renders the tags as a comma-delimited k=v list.
func (t Tags) String() string {
	if len(t) == 0 {
		return ""
	}
	var b strings.Builder
	for i, tag := range t {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(tag.Key)
		b.WriteByte('=')
		b.WriteString(tag.Value)
	}
	return b.String()
}

// clone returns an independent copy of the tag set.
func (t Tags) clone() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	copy(out, t)
	return out
}

// merged returns a new tag set equal to t with extra applied on top.
// An existing key keeps its position and takes the new value; new keys
// are appended in argument order. Neither input is mutated.
func (t Tags) merged(extra Tags) Tags {
	out := make(Tags, len(t), len(t)+len(extra))
	copy(out, t)
	for _, e := range extra {
		replaced := false
		for i := range out {
			if out[i].Key == e.Key {
				out[i].Value = e.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, e)
		}
	}
	return out
}

// composeName builds the full metric name sent to the backend:
// "<base>,<k1>=<v1>,...,name=<name>". The callsite name tag always
// comes last. This format is wire-visible to tag-capable statsd
// backends (InfluxDB line convention) and must stay stable.
func (t Tags) composeName(base, name string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, tag := range t {
		b.WriteByte(',')
		b.WriteString(tag.Key)
		b.WriteByte('=')
		b.WriteString(tag.Value)
	}
	b.WriteString(",name=")
	b.WriteString(name)
	return b.String()
}
