// Package library provides a directory-backed slide source and a watcher
// that reports when the directory's slides change.
package library

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

var imageExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".webp": {}, ".svg": {},
}

// Formats dhowden/tag can read pictures and titles from.
var audioExts = map[string]struct{}{
	".mp3": {}, ".m4a": {}, ".m4b": {}, ".mp4": {}, ".aac": {},
	".flac": {}, ".ogg": {}, ".oga": {}, ".dsf": {},
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsAudio reports whether path has a supported audio extension.
func IsAudio(path string) bool {
	_, ok := audioExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsSupported reports whether path would become a slide.
func IsSupported(path string) bool {
	return IsImage(path) || IsAudio(path)
}

// DirSource implements ports.ItemSource over a directory tree.
// Images become slides directly; audio files contribute their embedded
// artwork and title. Hidden files and directories are skipped. Slides are
// ordered by their path relative to the root, which is also their ID.
type DirSource struct {
	logger *slog.Logger
	root   string
}

// NewDirSource creates a source reading slides from root.
func NewDirSource(logger *slog.Logger, root string) *DirSource {
	return &DirSource{
		logger: logger.With(slog.String("component", "library")),
		root:   root,
	}
}

// Root returns the scanned directory.
func (s *DirSource) Root() string {
	return s.root
}

// Slides scans the directory tree.
func (s *DirSource) Slides() ([]domain.Slide, error) {
	if err := checkDir(s.root); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable entry", slog.String("path", path), slog.Any("error", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != s.root && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewSourceError("scan", s.root, err)
	}

	slides := make([]domain.Slide, 0, len(paths))
	for _, path := range paths {
		slide, err := s.readSlide(path)
		if err != nil {
			s.logger.Warn("skipping slide", slog.String("path", path), slog.Any("error", err))
			continue
		}
		slides = append(slides, slide)
	}

	sort.SliceStable(slides, func(i, j int) bool { return slides[i].ID < slides[j].ID })

	s.logger.Debug("library scanned", slog.String("root", s.root), slog.Int("slides", len(slides)))
	return slides, nil
}

func (s *DirSource) readSlide(path string) (domain.Slide, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return domain.Slide{}, domain.NewSourceError("read", path, err)
	}

	slide := domain.Slide{
		ID:      filepath.ToSlash(rel),
		Caption: baseName(path),
		Source:  path,
	}

	if IsImage(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Slide{}, domain.NewSourceError("read", path, err)
		}
		slide.Image = data
		return slide, nil
	}

	readAudioTags(path, &slide)
	return slide, nil
}

// readAudioTags fills caption and artwork from embedded tags.
// Files without readable tags keep their file name as caption.
func readAudioTags(path string, slide *domain.Slide) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		return
	}

	title := strings.TrimSpace(metadata.Title())
	artist := strings.TrimSpace(metadata.Artist())
	switch {
	case title != "" && artist != "":
		slide.Caption = artist + " - " + title
	case title != "":
		slide.Caption = title
	}

	if picture := metadata.Picture(); picture != nil {
		slide.Image = picture.Data
	}
}

func checkDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewSourceError("scan", root, domain.ErrSourceNotFound)
		}
		return domain.NewSourceError("scan", root, err)
	}
	if !info.IsDir() {
		return domain.NewSourceError("scan", root, domain.ErrNotADirectory)
	}
	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Verify interface implementation
var _ ports.ItemSource = (*DirSource)(nil)
