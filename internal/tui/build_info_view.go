// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-note-sync/models"

// RenderBuildInfo renders the build metadata shown by `notesync version`.
func RenderBuildInfo(info models.AppBuildInfo) string {
	return renderPage("О ПРОГРАММЕ", renderFields(
		[2]string{"Приложение", "notesync"},
		[2]string{"Версия", info.BuildVersion()},
		[2]string{"Дата", info.BuildDate()},
		[2]string{"Коммит", info.BuildCommit()},
	), "")
}
