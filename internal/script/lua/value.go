package lua

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Shopify/go-lua"
)

// toGo converts the value at index. Tables with keys 1..n become []any,
// other tables map[string]any.
func toGo(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeTable:
		return tableToGo(l, l.AbsIndex(index))
	default:
		return nil
	}
}

func tableToGo(l *lua.State, index int) any {
	fields := make(map[string]any)
	var list []any
	sequence := true

	l.PushNil()
	for l.Next(index) {
		v := toGo(l, -1)
		var key string
		// Number keys are read without ToString, which would convert the
		// key in place and break Next.
		if l.TypeOf(-2) == lua.TypeNumber {
			n, _ := l.ToNumber(-2)
			key = strconv.FormatFloat(n, 'g', -1, 64)
			if n != math.Trunc(n) || n < 1 {
				sequence = false
			}
		} else if s, ok := l.ToString(-2); ok {
			key = s
			sequence = false
		} else {
			sequence = false
			l.Pop(1)
			continue
		}
		fields[key] = v
		l.Pop(1)
	}

	if !sequence || len(fields) == 0 {
		return fields
	}
	list = make([]any, len(fields))
	for i := range list {
		v, ok := fields[strconv.Itoa(i+1)]
		if !ok {
			return fields
		}
		list[i] = v
	}
	return list
}

// push converts a host value and pushes it.
func push(l *lua.State, v any) {
	switch v := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(v)
	case float64:
		l.PushNumber(v)
	case int:
		l.PushInteger(v)
	case int64:
		l.PushNumber(float64(v))
	case string:
		l.PushString(v)
	case []byte:
		l.PushString(string(v))
	case []string:
		l.CreateTable(len(v), 0)
		for i, s := range v {
			l.PushString(s)
			l.RawSetInt(-2, i+1)
		}
	case []any:
		l.CreateTable(len(v), 0)
		for i, item := range v {
			push(l, item)
			l.RawSetInt(-2, i+1)
		}
	case map[string]any:
		l.CreateTable(0, len(v))
		for k, item := range v {
			push(l, item)
			l.SetField(-2, k)
		}
	default:
		l.PushString(fmt.Sprint(v))
	}
}
