// Package main provides the bluedropd daemon: a BLE GATT file-drop server
// that receives files from Web Bluetooth clients and stores them under an
// upload directory.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/bluedrop"
	"github.com/opd-ai/bluedrop/storage"
)

func main() {
	uploadDir := flag.String("upload-dir", storage.DefaultUploadRoot(), "Directory received files are stored under")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log level")
	}
	logrus.SetLevel(level)

	options := bluedrop.NewOptions()
	options.UploadRoot = *uploadDir

	server, err := bluedrop.New(options)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create file-drop server")
	}

	if err := server.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to start file-drop server")
	}
	defer server.Close()

	logrus.WithFields(logrus.Fields{
		"upload_dir": server.UploadRoot(),
	}).Info("bluedropd running, press Ctrl-C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	logrus.WithFields(logrus.Fields{
		"signal": sig.String(),
	}).Info("Shutting down")
}
