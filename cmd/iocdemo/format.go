package main

import (
	"fmt"
	"sync/atomic"
)

func formatValue(v any) string {
	switch v := v.(type) {
	case *atomic.Int64:
		return fmt.Sprint(v.Load())
	case *Config:
		return fmt.Sprintf("%s (%s)", v.AppName, v.Env)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
