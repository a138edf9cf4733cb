package topology

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

const markerHeader = "# projclone topology marker. Rewritten on every save.\n\n"

// Store reads and writes marker files through a types.FS
type Store struct {
	fs         types.FS
	markerName string
	logger     zerolog.Logger
}

// NewStore returns a Store using markerName as the per-project file name
func NewStore(filesystem types.FS, markerName string) *Store {
	return &Store{
		fs:         filesystem,
		markerName: markerName,
		logger:     logging.GetLogger("topology"),
	}
}

// MarkerPath returns the marker file location for a project root
func (s *Store) MarkerPath(dir string) string {
	return filepath.Join(dir, s.markerName)
}

// HasMarker reports whether dir is a registered project
func (s *Store) HasMarker(dir string) bool {
	info, err := s.fs.Stat(s.MarkerPath(dir))
	return err == nil && !info.IsDir()
}

// Load returns the record for dir. Without a marker a fresh, unsaved
// original record is returned. With one, clone entries whose directories
// are gone are dropped and, if any were, the marker is rewritten.
func (s *Store) Load(dir string) (*types.ProjectRecord, error) {
	dir = filepath.Clean(dir)
	markerPath := s.MarkerPath(dir)

	if _, err := s.fs.Stat(markerPath); err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("dir", dir).Msg("No marker, treating as new project")
			return types.NewProject(dir), nil
		}
		return nil, errors.Wrapf(err, errors.ErrMarkerRead, "failed to stat %s", markerPath)
	}

	record, err := s.ReadMarker(markerPath)
	if err != nil {
		return nil, err
	}

	if !types.SamePath(record.Path, dir) {
		s.logger.Warn().
			Str("recorded", record.Path).
			Str("dir", dir).
			Msg("Marker path does not match its directory, using the directory")
		record.Path = dir
	}

	if dropped := s.revalidate(record); dropped > 0 {
		s.logger.Info().Str("dir", dir).Int("dropped", dropped).Msg("Removed stale clone entries")
		if err := s.Save(record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// ReadMarker decodes the marker file at path without revalidating it.
// Both the TOML format and the legacy JSON format are accepted.
func (s *Store) ReadMarker(path string) (*types.ProjectRecord, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "marker %s does not exist", path)
		}
		return nil, errors.Wrapf(err, errors.ErrMarkerRead, "failed to read %s", path)
	}

	record, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMarkerParse, "failed to parse %s", path)
	}
	if err := record.Validate(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrMarkerParse, "invalid marker %s", path)
	}
	return record, nil
}

// Save overwrites the marker at record.Path
func (s *Store) Save(record *types.ProjectRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := Encode(record)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMarkerWrite, "failed to encode record for %s", record.Path)
	}

	markerPath := s.MarkerPath(record.Path)
	if err := s.fs.WriteFile(markerPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrMarkerWrite, "failed to write %s", markerPath)
	}
	s.logger.Debug().
		Str("path", markerPath).
		Int("clones", record.CloneCount()).
		Msg("Saved marker")
	return nil
}

// Remove deletes the marker in dir. A missing marker is not an error.
func (s *Store) Remove(dir string) error {
	markerPath := s.MarkerPath(dir)
	if err := s.fs.Remove(markerPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrMarkerWrite, "failed to remove %s", markerPath)
	}
	return nil
}

// revalidate drops clone entries, at any depth, whose path is not an
// existing directory and returns how many were dropped
func (s *Store) revalidate(record *types.ProjectRecord) int {
	if len(record.Clones) == 0 {
		return 0
	}
	dropped := 0
	kept := make([]*types.ProjectRecord, 0, len(record.Clones))
	for _, clone := range record.Clones {
		if clone == nil {
			dropped++
			continue
		}
		info, err := s.fs.Stat(clone.Path)
		if err != nil || !info.IsDir() {
			s.logger.Debug().Str("clone", clone.Path).Msg("Clone directory is gone")
			dropped++
			continue
		}
		dropped += s.revalidate(clone)
		kept = append(kept, clone)
	}
	record.Clones = kept
	return dropped
}

// Encode renders record in the marker format
func Encode(record *types.ProjectRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(markerHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses marker content. Content starting with "{" is read as a
// legacy JSON marker.
func Decode(data []byte) (*types.ProjectRecord, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return decodeLegacy(trimmed)
	}
	var record types.ProjectRecord
	if err := toml.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
