// Command devicetoken mints the signed token a kiosk presents to the server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"teahouse-kiosk/internal/auth"
	"teahouse-kiosk/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var errMissingDevice = errors.New("-device is required")

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:], os.Getenv("DEVICE_TOKEN_SECRET"), os.Stdout); err != nil {
		logger.L().Fatal("failed to issue device token", zap.Error(err))
	}
}

func run(args []string, secret string, out io.Writer) error {
	fs := flag.NewFlagSet("devicetoken", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	deviceID := fs.String("device", "", "kiosk device id to embed in the token")
	ttl := fs.Duration("ttl", 0, "token lifetime, 0 never expires")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *deviceID == "" {
		return errMissingDevice
	}
	if *ttl < 0 {
		return fmt.Errorf("invalid -ttl %s", *ttl)
	}

	token, err := auth.IssueDeviceToken(secret, *deviceID, *ttl)
	if err != nil {
		return err
	}

	logger.L().Info("device token issued",
		zap.String("device_id", *deviceID),
		zap.Duration("ttl", *ttl),
	)
	_, err = fmt.Fprintln(out, token)
	return err
}
