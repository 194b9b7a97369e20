package registry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plin-labs/plin-boot/internal/manifest"
)

// Store loads manifests relative to an application root. Nothing is
// cached; every Load re-reads the files from disk.
type Store struct {
	Root   string
	Logger zerolog.Logger
}

// NewStore returns a Store rooted at root.
func NewStore(root string, logger zerolog.Logger) *Store {
	return &Store{Root: root, Logger: logger}
}

// LocateUser returns the path of the first user manifest candidate that
// exists, or false when there is none.
func (s *Store) LocateUser() (Candidate, string, bool) {
	return findFirst(s.Root, userCandidates)
}

// LocatePlatform returns the path of the first platform manifest candidate
// that exists, or false when there is none.
func (s *Store) LocatePlatform() (Candidate, string, bool) {
	return findFirst(s.Root, platformCandidates)
}

// LoadSource reads and parses the manifest at path.
func (s *Store) LoadSource(kind Kind, path string) (*Source, error) {
	m, err := manifest.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s manifest: %w", kind, err)
	}
	s.Logger.Debug().Str("kind", string(kind)).Str("path", path).Int("descriptors", len(m)).Msg("manifest loaded")
	return &Source{Kind: kind, Path: path, Manifest: m}, nil
}

// Load locates both manifests, loads them and merges them. A missing user
// manifest yields an empty user source. A missing platform manifest, when
// the user manifest does not opt out of it, is reported as a warning and
// generation proceeds without platform entries. Read failures on a
// manifest that exists are returned.
func (s *Store) Load() (*Resolution, error) {
	res := &Resolution{}

	var user manifest.Manifest
	if c, path, ok := s.LocateUser(); ok {
		src, err := s.LoadSource(c.Kind, path)
		if err != nil {
			return nil, err
		}
		res.User = src
		user = src.Manifest
	} else {
		s.Logger.Debug().Str("root", s.Root).Msg("no user manifest found")
	}

	res.IncludePlatform = IncludesPlatform(user)

	var platform manifest.Manifest
	if res.IncludePlatform {
		if c, path, ok := s.LocatePlatform(); ok {
			src, err := s.LoadSource(c.Kind, path)
			if err != nil {
				return nil, err
			}
			res.Platform = src
			platform = src.Manifest
			if c.Kind.IsDependency() {
				res.PlatformVersion = s.checkPlatformVersion()
			}
		} else {
			s.Logger.Warn().Str("root", s.Root).Msg("Platform manifest not found")
		}
	} else {
		s.Logger.Debug().Msg("user manifest opts out of the platform manifest")
	}

	res.Manifest = Resolve(platform, user)
	return res, nil
}
