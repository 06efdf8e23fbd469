package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HashCache remembers, per scope, the definition hash each command was last
// registered with, so an unchanged command survives restarts without a
// create call. It is a plain JSON file per scope; losing it only costs a
// redundant re-registration.
type HashCache struct {
	dir string
}

func NewHashCache(dir string) *HashCache {
	return &HashCache{dir: dir}
}

func (h *HashCache) Load(guildID string) map[string]string {
	out := make(map[string]string)
	data, err := os.ReadFile(h.path(guildID))
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

func (h *HashCache) Save(guildID string, hashes map[string]string) error {
	path := h.path(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (h *HashCache) path(guildID string) string {
	scope := guildID
	if scope == "" {
		scope = "global"
	}
	return filepath.Join(h.dir, scope+".json")
}
