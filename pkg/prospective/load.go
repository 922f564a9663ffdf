package prospective

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/prospect/pkg/errors"
)

// ComponentsFile is the name of a trial's component list.
const ComponentsFile = "components.toml"

type componentsDoc struct {
	Component []Component `toml:"component"`
}

// LoadComponents reads a TOML file of [[component]] tables.
func LoadComponents(path string) ([]Component, error) {
	var doc componentsDoc
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return checked(doc, md)
}

// DecodeComponents reads [[component]] tables from r.
func DecodeComponents(r io.Reader) ([]Component, error) {
	var doc componentsDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode components")
	}
	return checked(doc, md)
}

func checked(doc componentsDoc, md toml.MetaData) ([]Component, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown component keys: %s", strings.Join(keys, ", "))
	}
	for i, c := range doc.Component {
		if c.Type == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "component %d has no type", i+1)
		}
	}
	return doc.Component, nil
}
