package match

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// roleFile is the on-disk shape of a roles definition file.
type roleFile struct {
	Roles []roleEntry `yaml:"roles"`
}

type roleEntry struct {
	Name           string   `yaml:"name"`
	Required       int      `yaml:"required"`
	MinExperience  float64  `yaml:"min_experience"`
	Keywords       []string `yaml:"keywords"`
	Mode           string   `yaml:"mode"`
	IncludeDiploma bool     `yaml:"include_diploma"`
}

// LoadRoles reads role criteria from a YAML file into a RoleSet.
// Later entries with the same name replace earlier ones (upsert), and
// every entry is validated on the way in.
func LoadRoles(path string) (rs RoleSet, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read roles file: %s", path)
		return rs, err
	}

	var file roleFile
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse roles YAML: %s", path)
		return rs, err
	}

	if len(file.Roles) == 0 {
		err = errors.Errorf("no roles defined in %s", path)
		return rs, err
	}

	for _, entry := range file.Roles {
		var mode Mode
		mode, err = ParseMode(entry.Mode)
		if err != nil {
			err = errors.Wrapf(err, "role %q", entry.Name)
			return rs, err
		}

		c := NewCriterion(entry.Name, entry.Required, entry.Keywords...)
		c.MinExperience = entry.MinExperience
		c.Mode = mode
		c.IncludeDiploma = entry.IncludeDiploma

		err = rs.Upsert(c)
		if err != nil {
			err = errors.Wrapf(err, "invalid role in %s", path)
			return rs, err
		}
	}

	return rs, err
}
