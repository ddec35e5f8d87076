// Command update-knowledge scans the knowledge base (a local folder or
// a Google Drive folder), writes a JSON snapshot and rebuilds the
// search index. With -watch it keeps running and rebuilds whenever
// local documents change.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hct-voice/internal/config"
	"hct-voice/internal/drive"
	"hct-voice/internal/extract"
	"hct-voice/internal/scanner"
	"hct-voice/internal/search"
	"hct-voice/internal/service"
)

func main() {
	kbPath := flag.String("kb", "", "local knowledge base directory (defaults to KB_PATH)")
	useDrive := flag.Bool("drive", false, "scan the configured Google Drive folder instead of the local directory")
	watch := flag.Bool("watch", false, "keep running and rebuild when local documents change")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if *kbPath == "" {
		*kbPath = cfg.KnowledgeBasePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	index := search.NewIndex(cfg.IndexDir)
	defer func() {
		_ = index.Close()
	}()

	extractor := extract.New()
	if !extract.PDFToolAvailable() {
		slog.Warn("pdftotext not found, PDF files will be skipped", "hint", extract.PDFInstallInstructions())
	}

	var src service.Scanner
	if *useDrive {
		if !cfg.DriveEnabled() {
			log.Fatal("Google Drive not configured: set GOOGLE_DRIVE_CREDENTIALS and GOOGLE_DRIVE_FOLDER_ID")
		}
		client, err := drive.NewClient(ctx, cfg.GoogleDriveCredentials, cfg.GoogleDriveFolderID)
		if err != nil {
			log.Fatalf("Failed to create Google Drive client: %v", err)
		}
		src = scanner.NewDrive(client, extractor)
		slog.Info("Scanning Google Drive folder", "folder_id", cfg.GoogleDriveFolderID)
	} else {
		src = scanner.NewLocal(*kbPath, extractor)
		slog.Info("Scanning local knowledge base", "path", *kbPath)
	}

	refresher := service.NewKnowledgeService(src, index, scanner.WriteSnapshot, cfg.SnapshotPath)

	n, err := refresher.Refresh(ctx)
	if err != nil {
		log.Fatalf("Failed to build knowledge base: %v", err)
	}
	slog.Info("Knowledge base built", "documents", n, "index", cfg.IndexDir, "snapshot", cfg.SnapshotPath)

	if !*watch {
		return
	}
	if *useDrive {
		log.Fatal("-watch only supports local knowledge bases")
	}

	w, err := scanner.NewWatcher(*kbPath)
	if err != nil {
		log.Fatalf("Failed to watch knowledge base: %v", err)
	}
	defer func() {
		_ = w.Close()
	}()

	slog.Info("Watching for changes", "path", *kbPath)
	w.Run(ctx, func(ctx context.Context) {
		n, err := refresher.Refresh(ctx)
		if err != nil {
			slog.Error("Rebuild failed", "error", err)
			return
		}
		slog.Info("Knowledge base rebuilt", "documents", n)
	})
}
