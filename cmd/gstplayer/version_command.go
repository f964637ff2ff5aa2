package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"gstplayer/internal/gstbackend"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			gst := "unavailable (built without cgo)"
			if gstbackend.Available {
				gst = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gstplayer %s (%s %s/%s, GStreamer %s)\n",
				version, runtime.Version(), runtime.GOOS, runtime.GOARCH, gst)
			return nil
		},
	}
}
