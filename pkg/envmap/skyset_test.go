package envmap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeFace(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create face directory: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create face file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode face: %v", err)
	}
}

func TestLoadCubeMap(t *testing.T) {
	for _, set := range []SkySet{Sponza, Hipshot} {
		t.Run(set.String(), func(t *testing.T) {
			root := t.TempDir()
			files, err := set.Files(root)
			if err != nil {
				t.Fatalf("Files failed: %v", err)
			}
			for i, file := range files {
				writeFace(t, file, color.RGBA{R: uint8(40 * i), A: 255})
			}

			cube, err := LoadCubeMap(root, set)
			if err != nil {
				t.Fatalf("LoadCubeMap failed: %v", err)
			}
			if cube.Set() != set {
				t.Errorf("Expected set %s, got %s", set, cube.Set())
			}
			for f := FacePosX; f <= FaceNegZ; f++ {
				want := float64(40*int(f)) / 255.0
				if got := cube.Face(f).At(1, 1).X; got < want-1e-3 || got > want+1e-3 {
					t.Errorf("Face %s loaded out of order: red %f, expected %f", f, got, want)
				}
			}
		})
	}
}

func TestLoadCubeMap_MissingFaceFails(t *testing.T) {
	root := t.TempDir()
	files, _ := Sponza.Files(root)
	for _, file := range files[:5] {
		writeFace(t, file, color.RGBA{A: 255})
	}
	if _, err := LoadCubeMap(root, Sponza); err == nil {
		t.Error("Expected error when the -z face is missing")
	}
}

func TestParseSkySet(t *testing.T) {
	tests := []struct {
		name    string
		want    SkySet
		wantErr bool
	}{
		{"sponza", Sponza, false},
		{"HIPSHOT", Hipshot, false},
		{"desert", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSkySet(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSkySet(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseSkySet(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}
