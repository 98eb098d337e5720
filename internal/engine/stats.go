package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type stats struct {
	total   time.Duration
	extract time.Duration
	render  time.Duration
	encode  time.Duration
	frames  int
}

func (s stats) fps() float64 {
	if s.render <= 0 {
		return 0
	}
	return float64(s.frames) / s.render.Seconds()
}

func (p *VideoProject) writeStats(s stats) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Extraction: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, s.total.Seconds(), s.extract.Seconds(), s.render.Seconds(), s.encode.Seconds(), s.frames, s.fps(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		s.frames,
		s.total.Seconds(),
		s.render.Seconds(),
		s.encode.Seconds(),
		s.fps(),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	defer f.Close()
	f.WriteString(logEntry)
}
