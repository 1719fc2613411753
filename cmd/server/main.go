package main

import (
	"context"
	"os"

	"deepstore-server/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Log.WithError(err).Error("deepstore exited with error")
		os.Exit(1)
	}
}
