package scheduler

import (
	"time"

	"rizkifajar/quran-api/internal/data"
)

const WarmChapterSource = "warm-chapter-source"

type Task struct {
	Type      string
	ChapterID int
	Mode      data.MushafMode
	ExecuteAt time.Time
	CreatedAt time.Time
}
