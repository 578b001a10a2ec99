package auth

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Permissions maps role -> []permission. A role absent from the map has
// no permissions at all.
type Permissions map[string][]string

type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPermissions loads a permissions.yml file and returns a role->permissions map.
func LoadPermissions(path string) (Permissions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf permissionsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, err
	}
	return Permissions(pf.Roles), nil
}
