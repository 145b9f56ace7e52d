// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-note-sync/internal/service"
)

// ErrUserQuit is returned when the user leaves a form without submitting.
var ErrUserQuit = errors.New("вышел из программы")

// HumanizeError turns sync and transport errors into short messages.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Вход не выполнен: выполните `notesync login`"
	case errors.Is(err, service.ErrAuth):
		return "Сессия недействительна: выполните `notesync login`"
	case errors.Is(err, service.ErrLockConflict):
		return "Синхронизация уже выполняется"
	case errors.Is(err, service.ErrSyncBudgetExceeded):
		return "Превышено время синхронизации, изменения не сохранены"
	}

	var netErr *service.NetworkError
	if errors.As(err, &netErr) {
		return "Отсутствует сеть или Сервер недоступен"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
