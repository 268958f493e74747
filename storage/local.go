package storage

import (
	"encoding/json"
	"os"
	"sync"
)

// Fixed keys inside the local state file, one for the day mapping and one for
// the persisted admin flag.
const (
	LocalDataKey  = "calendar_app_data"
	LocalAdminKey = "calendar_app_is_admin"

	localTmpSuffix       = ".tmp.json"
	localFilePermissions = 0644
)

// LocalDay is the per-date payload persisted by the file backend.
type LocalDay struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type localState struct {
	Days    map[string]LocalDay `json:"calendar_app_data"`
	IsAdmin bool                `json:"calendar_app_is_admin"`
}

// LocalFile is the single-file persistence used when the server runs without
// a database. All state lives in one JSON document; every write goes through
// a temp file and rename so a crash never leaves a half-written calendar.
type LocalFile struct {
	path string
	mu   sync.Mutex
}

func OpenLocalFile(path string) *LocalFile {
	return &LocalFile{path: path}
}

func (f *LocalFile) load() (*localState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &localState{Days: map[string]LocalDay{}}, nil
		}
		return nil, err
	}

	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Days == nil {
		state.Days = map[string]LocalDay{}
	}
	return &state, nil
}

func (f *LocalFile) save(state *localState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := f.path + localTmpSuffix
	if err := os.WriteFile(tmpFile, data, localFilePermissions); err != nil {
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Days returns the full date mapping.
func (f *LocalFile) Days() (map[string]LocalDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return nil, err
	}
	return state.Days, nil
}

// PutDay writes or replaces the record for a date. Last write wins.
func (f *LocalFile) PutDay(date string, day LocalDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return err
	}
	state.Days[date] = day
	return f.save(state)
}

// AdminFlag reports the persisted admin flag. A read failure counts as
// logged out.
func (f *LocalFile) AdminFlag() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return false
	}
	return state.IsAdmin
}

// SetAdminFlag persists the admin flag.
func (f *LocalFile) SetAdminFlag(isAdmin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return err
	}
	state.IsAdmin = isAdmin
	return f.save(state)
}
