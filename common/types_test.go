package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestImportedTextureDecodeData(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{R: 255, G: 10, B: 20, A: 255})

	tex := &ImportedTexture{Name: "data", Data: encodePNG(t, img)}
	staging, err := tex.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staging.Width != 3 || staging.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 3*2*4 {
		t.Errorf("expected %d bytes, got %d", 3*2*4, len(staging.Pixels))
	}
	if staging.RowPitch() != 12 {
		t.Errorf("expected row pitch 12, got %d", staging.RowPitch())
	}
	offset := (1*3 + 1) * 4
	if got := staging.Pixels[offset : offset+4]; got[0] != 255 || got[1] != 10 || got[2] != 20 || got[3] != 255 {
		t.Errorf("expected pixel (255,10,20,255), got %v", got)
	}
}

func TestImportedTextureDecodePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.png")
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if err := os.WriteFile(path, encodePNG(t, img), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	staging, err := (&ImportedTexture{Name: "gray", Path: path}).Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staging.Width != 4 || staging.Height != 4 {
		t.Errorf("expected 4x4, got %dx%d", staging.Width, staging.Height)
	}
	if staging.Pixels[3] != 255 {
		t.Errorf("expected opaque alpha, got %d", staging.Pixels[3])
	}
}

func TestImportedTextureDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		tex  *ImportedTexture
	}{
		{name: "nil", tex: nil},
		{name: "empty", tex: &ImportedTexture{Name: "empty"}},
		{name: "missing file", tex: &ImportedTexture{Name: "missing", Path: filepath.Join(t.TempDir(), "nope.png")}},
		{name: "garbage", tex: &ImportedTexture{Name: "garbage", Data: []byte("not an image")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tex.Decode(); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestCoalesceAndMean(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := Mean(0.5, 1.0, 0.0); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := Mean(); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	keys := SortedKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("expected [a b c], got %v", keys)
	}
}
