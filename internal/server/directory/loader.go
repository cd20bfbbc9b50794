package directory

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads the credential file at path and builds the Directory.
//
// The file is a JSON array of objects with "username", "password", "user_id"
// and "can_post" fields. Usernames and ids must be unique; a duplicate or a
// malformed file is a load error, which the caller treats as fatal during
// bootstrap. Load errors never occur at request time.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credential file %s: %w", path, err)
	}

	var records []meta
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing credential file %s: %w", path, err)
	}

	return build(records)
}

func build(records []meta) (*Directory, error) {
	d := &Directory{
		usernameToID: make(map[string]uint64, len(records)),
		byID:         make(map[uint64]meta, len(records)),
	}

	for _, m := range records {
		if m.Username == "" {
			return nil, fmt.Errorf("credential record with user_id %d has an empty username", m.UserID)
		}
		if _, ok := d.usernameToID[m.Username]; ok {
			return nil, fmt.Errorf("duplicate username %q in credential file", m.Username)
		}
		if _, ok := d.byID[m.UserID]; ok {
			return nil, fmt.Errorf("duplicate user_id %d in credential file", m.UserID)
		}
		d.usernameToID[m.Username] = m.UserID
		d.byID[m.UserID] = m
	}

	return d, nil
}
