package version

import (
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X deepstore-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// App - имя сервиса в /version и в выводе CLI.
const App = "deepstore"

// Номер сборки считается в днях от этой даты.
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version.
type VersionInfo struct {
	App       string `json:"app"`
	BuildID   int    `json:"build_id"`
	BuildDate string `json:"build_date,omitempty"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	Known     bool   `json:"known"`
	Error     string `json:"error,omitempty"`
}

// CalculateBuildID переводит дату сборки в номер.
func CalculateBuildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}

	// Обе даты в UTC, переходов на летнее время нет.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

func Info() VersionInfo {
	info := VersionInfo{
		App:       App,
		BuildDate: BuildDate,
		Commit:    coalesce(BuildCommit, "unknown"),
		Branch:    coalesce(BuildBranch, "unknown"),
	}

	id, err := CalculateBuildID(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Known = true
	return info
}

func String() string {
	info := Info()
	if !info.Known {
		return fmt.Sprintf("%s dev build (%s)", info.App, info.Error)
	}
	return fmt.Sprintf("%s build %d (%s) commit[%s] branch[%s]",
		info.App, info.BuildID, info.BuildDate, info.Commit, info.Branch)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
