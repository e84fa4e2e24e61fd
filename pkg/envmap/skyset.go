package envmap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-skycube-pathtracer/pkg/loaders"
)

// SkySet names one of the bundled cube map image sets
type SkySet int

const (
	Sponza SkySet = iota
	Hipshot
)

func (s SkySet) String() string {
	switch s {
	case Sponza:
		return "sponza"
	case Hipshot:
		return "hipshot"
	default:
		return fmt.Sprintf("SkySet(%d)", int(s))
	}
}

// ParseSkySet resolves a sky set by name
func ParseSkySet(name string) (SkySet, error) {
	switch strings.ToLower(name) {
	case "sponza":
		return Sponza, nil
	case "hipshot":
		return Hipshot, nil
	default:
		return 0, fmt.Errorf("unknown sky set %q (want sponza or hipshot)", name)
	}
}

// Files returns the face image paths of the set relative to a cube map root,
// in +x, -x, +y, -y, +z, -z order
func (s SkySet) Files(root string) ([6]string, error) {
	var dir string
	var names [6]string
	switch s {
	case Sponza:
		dir = "sponza"
		names = [6]string{"sponza-PX.png", "sponza-NX.png", "sponza-PY.png", "sponza-NY.png", "sponza-PZ.png", "sponza-NZ.png"}
	case Hipshot:
		dir = "hipshot_m9_sky"
		names = [6]string{"16_rt.png", "16_lf.png", "16_up.png", "16_dn.png", "16_ft.png", "16_bk.png"}
	default:
		return names, fmt.Errorf("unknown sky set %s", s)
	}
	for i := range names {
		names[i] = filepath.Join(root, dir, names[i])
	}
	return names, nil
}

// LoadCubeMap reads all six faces of a sky set. Any missing or undecodable face fails the load.
func LoadCubeMap(root string, set SkySet) (*CubeMap, error) {
	files, err := set.Files(root)
	if err != nil {
		return nil, err
	}

	var faces [6]*loaders.ImageData
	for i, file := range files {
		img, err := loaders.LoadImage(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s face of %s sky: %w", Face(i), set, err)
		}
		faces[i] = img
	}
	return NewCubeMap(faces, set)
}
