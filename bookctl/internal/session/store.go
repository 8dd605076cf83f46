package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

var ErrNoSession = errors.New("not logged in; run `bookctl login` first")

type State struct {
	ServerURL string    `json:"server_url"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPath is the session file under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bookctl", "session.json")
}

func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, ErrNoSession
		}
		return State{}, fmt.Errorf("read session: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	if state.Token == "" {
		return State{}, ErrNoSession
	}
	return state, nil
}

func Save(path string, state State) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Clear removes the session file. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
