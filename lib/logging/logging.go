package logging

import (
	"context"
	"fmt"
	"log"
)

func init() {
	log.SetFlags(0)
}

// Log logs a message.
func Log(
	ctx context.Context,
	message string,
) {
	log.Print(message)
}

// Logf logs a formatted message.
func Logf(
	ctx context.Context,
	format string,
	v ...interface{},
) {
	Log(ctx, fmt.Sprintf(format, v...))
}
