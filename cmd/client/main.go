package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-note-sync/internal/tui"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := newRootCommand(info).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка: "+tui.HumanizeError(err))
		os.Exit(1)
	}
}
