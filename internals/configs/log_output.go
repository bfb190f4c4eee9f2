package configs

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogOutput menulis log ke stdout, dan ke file berotasi bila LOG_FILE diisi.
// Writer yang dikembalikan perlu ditutup saat shutdown.
func SetupLogOutput(cfg LogConfig) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.Printf("[LOG] Menulis log ke %s (maks %d MB)", cfg.File, cfg.MaxSizeMB)
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
