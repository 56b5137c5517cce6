package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Format fills "{}" and "{N}" placeholders in a message template, the way
// motion-notify templates have always been written. "{{" and "}}" produce
// literal braces. Placeholders without a matching argument are left as is.
func Format(template string, args ...interface{}) string {
	var b strings.Builder
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(template[i:], '}')
			if end == -1 {
				b.WriteString(template[i:])
				return b.String()
			}
			field := template[i+1 : i+end]
			n := next
			if field != "" {
				var err error
				if n, err = strconv.Atoi(field); err != nil {
					b.WriteString(template[i : i+end+1])
					i += end
					continue
				}
			} else {
				next++
			}
			if n >= 0 && n < len(args) {
				fmt.Fprint(&b, args[n])
			} else {
				b.WriteString(template[i : i+end+1])
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
