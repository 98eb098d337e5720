package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/engine"
	"github.com/ivlev/cursorcast/internal/recording"
	"github.com/ivlev/cursorcast/internal/system"
	"github.com/ivlev/cursorcast/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	dirs := []string{"input/recordings", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к метаданным записи (по умолчанию: самый свежий файл в input/recordings/)")
	videoPtr := flag.String("video", "", "Путь к видео записи (по умолчанию: из метаданных)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	configPtr := flag.String("config", "", "YAML-файл настроек")
	widthPtr := flag.Int("width", 0, "Ширина холста (0 - из настроек)")
	heightPtr := flag.Int("height", 0, "Высота холста (0 - из настроек)")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	workersPtr := flag.Int("workers", 0, "Потоки (0 - авто по CPU и памяти)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	assetsPtr := flag.String("cursor-assets", "", "Папка с SVG курсорами (по умолчанию: встроенные)")
	noZoomPtr := flag.Bool("no-zoom", false, "Отключить автоматический зум")
	noBlurPtr := flag.Bool("no-blur", false, "Отключить размытие движения курсора")
	keepPtr := flag.Bool("keep-frames", false, "Не удалять временные кадры")
	statsPtr := flag.Bool("stats", false, "Показать отчёт о производительности")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.LoadFile(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения настроек: %v", err)
		}
		cfg = loaded
	}
	cfg.BuildVersion = buildVersion

	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}
	if *presetPtr != "" {
		cfg.ApplyPreset(*presetPtr)
	}
	if *noZoomPtr {
		cfg.Zoom.Enabled = false
	}
	if *noBlurPtr {
		cfg.Blur.Enabled = false
	}
	if *assetsPtr != "" {
		cfg.CursorAssets = *assetsPtr
	}
	cfg.KeepFrames = cfg.KeepFrames || *keepPtr
	cfg.ShowStats = cfg.ShowStats || *statsPtr

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestRecording("input/recordings")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите метаданные записи в input/recordings/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}
	cfg.InputPath = inputPath

	meta, err := recording.Read(inputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения записи: %v", err)
	}
	cfg.VideoPath = *videoPtr

	finalOutput := *outputPtr
	if finalOutput == "" {
		baseName := filepath.Base(inputPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}
	cfg.OutputVideo = finalOutput

	encoderName := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName

	cfg.Quality = *qualityPtr
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(encoderName)
	}

	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	} else {
		c := system.SuggestConcurrency(meta.Video.Width * meta.Video.Height * 4)
		cfg.Workers, cfg.BatchSize = c.Workers, c.BatchSize
	}
	cfg.Normalize()

	if err := export(cfg, meta); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}

// export runs the project. Temporary cursor assets are removed before it
// returns, so a failing run does not leave them behind.
func export(cfg *config.Config, meta *recording.Metadata) error {
	// курсор из метаданных записи имеет приоритет
	cursorCfg := cfg.Cursor
	if meta.Cursor != nil {
		cursorCfg = *meta.Cursor
	}

	assetsDir, cleanup, err := prepareCursorAssets(cfg.CursorAssets, cursorCfg.Color)
	if err != nil {
		return fmt.Errorf("ошибка подготовки курсоров: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Инициализируем зависимости
	ve := video.NewFFmpegEncoder(cfg.VideoEncoder, cfg.Quality)
	rast := cursor.NewFitzRasterizer(assetsDir, cursorCfg.Shadow)

	project := engine.NewVideoProject(cfg, meta, ve, rast)
	project.Progress = func(percent float64, status string) {
		if status != engine.StageRender {
			fmt.Printf("[>] %3.0f%% %s\n", percent, status)
		}
	}
	return project.Run(ctx)
}

// prepareCursorAssets returns dir unchanged when set. Otherwise it writes the
// built-in glyphs in the given color to a new temporary directory that
// cleanup removes.
func prepareCursorAssets(dir, color string) (string, func(), error) {
	if dir != "" {
		return dir, func() {}, nil
	}
	tmp, err := os.MkdirTemp("", "cursorcast_cursors_")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(tmp) }
	if err := cursor.ExtractAssets(tmp, color); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp, cleanup, nil
}
