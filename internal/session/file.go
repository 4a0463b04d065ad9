package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediminder/mediminder/internal/models"
)

const (
	sessionFile = "session.json"
	prefsFile   = "prefs.json"
)

// FileStore keeps session and preferences as two JSON files under a
// directory. Reads are best-effort: anything missing or corrupt
// degrades to the zero value rather than failing the caller.
type FileStore struct {
	dir string
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (and creates if needed) the store directory.
// An empty dir selects <user config dir>/mediminder.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "mediminder")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

type sessionData struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type prefsData struct {
	Avatars  map[string]string `json:"avatars"`
	DarkMode bool              `json:"dark_mode"`
}

func (s *FileStore) SaveSession(user models.User, token string) error {
	data, err := json.MarshalIndent(sessionData{User: user, Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, sessionFile), data, 0o600)
}

// RestoreSession returns the persisted session, if any. A file that does
// not parse, lacks a token or user id, or carries an expired JWT is
// treated as absent and removed.
func (s *FileStore) RestoreSession() (models.User, string, bool) {
	path := filepath.Join(s.dir, sessionFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return models.User{}, "", false
	}

	var sd sessionData
	if err := json.Unmarshal(data, &sd); err != nil || sd.Token == "" || sd.User.ID == "" {
		_ = os.Remove(path)
		return models.User{}, "", false
	}

	if s.tokenExpired(sd.Token) {
		_ = os.Remove(path)
		return models.User{}, "", false
	}

	return sd.User, sd.Token, true
}

func (s *FileStore) ClearSession() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// tokenExpired reports whether the token is a JWT whose exp claim is in
// the past. Opaque (non-JWT) tokens are never considered expired; the
// server remains the authority on those.
func (s *FileStore) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

func (s *FileStore) loadPrefs() prefsData {
	var p prefsData
	data, err := os.ReadFile(filepath.Join(s.dir, prefsFile))
	if err == nil {
		_ = json.Unmarshal(data, &p)
	}
	if p.Avatars == nil {
		p.Avatars = map[string]string{}
	}
	return p
}

func (s *FileStore) savePrefs(p prefsData) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, prefsFile), data, 0o600)
}

func (s *FileStore) SetAvatar(userID, avatar string) error {
	p := s.loadPrefs()
	p.Avatars[userID] = avatar
	return s.savePrefs(p)
}

func (s *FileStore) Avatar(userID string) string {
	return s.loadPrefs().Avatars[userID]
}

func (s *FileStore) SetDarkMode(on bool) error {
	p := s.loadPrefs()
	p.DarkMode = on
	return s.savePrefs(p)
}

func (s *FileStore) DarkMode() bool {
	return s.loadPrefs().DarkMode
}
