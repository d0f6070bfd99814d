package main

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"
)

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			src.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	got := scale(src, 8)
	if b := got.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("bounds %v, want 8x4", b)
	}
	if r, _, _, a := got.At(3, 2).RGBA(); r>>8 != 0xFF || a>>8 != 0xFF {
		t.Fatalf("pixel lost its colour: r=%x a=%x", r>>8, a>>8)
	}
	if scale(src, 0) != image.Image(src) {
		t.Fatal("width 0 must keep the image")
	}
}

func TestEncodeByExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var out bytes.Buffer
	if err := encode(&out, "thumb.BMP", img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := bmp.Decode(&out); err != nil {
		t.Fatalf("bitmap output: %v", err)
	}
	out.Reset()
	if err := encode(&out, "thumb.png", img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
}
