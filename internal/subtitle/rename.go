package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tvscrape/internal/fileutil"
)

// ErrDestinationExists is returned by Rename when the destination path
// already exists and is not the source file itself.
var ErrDestinationExists = errors.New("destination already exists")

// Rename moves a subtitle file alongside a video's new name, optionally
// keeping its language tag as a dot-suffix (e.g. "Show S01E01.chs.srt").
func Rename(subtitlePath, newVideoName string, preserveLanguage bool) RenameResult {
	result := RenameResult{SourcePath: subtitlePath}

	lang := extractLanguage(filepath.Base(subtitlePath))
	ext := filepath.Ext(subtitlePath)

	destName := newVideoName
	if preserveLanguage && lang != LanguageNone {
		destName = fmt.Sprintf("%s.%s", newVideoName, string(lang))
	}
	destName += ext

	dest := filepath.Join(filepath.Dir(subtitlePath), destName)
	result.DestPath = dest

	if dest == subtitlePath {
		result.Success = true
		return result
	}

	if info, statErr := os.Lstat(dest); statErr == nil {
		same, sameErr := sameFile(subtitlePath, dest)
		if sameErr != nil || !same {
			if info != nil {
				result.Err = ErrDestinationExists
				return result
			}
		}
	}

	if err := os.Rename(subtitlePath, dest); err != nil {
		if copyErr := fileutil.CopyFileVerified(subtitlePath, dest); copyErr != nil {
			result.Err = fmt.Errorf("rename subtitle: %w", err)
			return result
		}
		if removeErr := os.Remove(subtitlePath); removeErr != nil {
			result.Err = fmt.Errorf("remove source after copy: %w", removeErr)
			return result
		}
	}

	result.Success = true
	return result
}

// BatchRename applies Rename to every request, reporting per-item results
// alongside an aggregate success/failure count.
func BatchRename(requests []RenameRequest) BatchRenameResult {
	batch := BatchRenameResult{Total: len(requests)}
	for _, req := range requests {
		res := Rename(req.SubtitlePath, req.NewVideoName, req.PreserveLanguage)
		batch.Results = append(batch.Results, res)
		if res.Success {
			batch.Success++
		} else {
			batch.Failed++
		}
	}
	return batch
}

func sameFile(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(infoA, infoB), nil
}
