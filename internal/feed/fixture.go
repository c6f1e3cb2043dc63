package feed

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// Built-in fallback datasets, one row matrix per feed mode, stored as YAML
// and pushed through the same normalizer as remote rows. The first row is
// a header, mirroring the remote layout.

//go:embed fixtures/standard.yaml
var standardFixture []byte

//go:embed fixtures/deep.yaml
var deepFixture []byte

var fixtures = map[Mode][][]string{}

func init() {
	for mode, raw := range map[Mode][]byte{ModeStandard: standardFixture, ModeDeep: deepFixture} {
		var rows [][]string
		if err := yaml.Unmarshal(raw, &rows); err != nil {
			panic("feed: malformed embedded fixture for mode " + string(mode) + ": " + err.Error())
		}
		fixtures[mode] = rows
	}
}

// fixtureRows returns the fallback dataset for a mode, header row skipped.
func fixtureRows(mode Mode) [][]string {
	rows := fixtures[ModeStandard]
	if mode == ModeDeep {
		rows = fixtures[ModeDeep]
	}
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
