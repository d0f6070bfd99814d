package parser

import (
	"context"
	"testing"

	"github.com/wudi/dwgkit/recovery"
)

func FuzzDocumentParser(f *testing.F) {
	f.Add(legacyDrawing())
	f.Add(r2004Drawing())
	f.Add([]byte("AC1014"))

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, strategy := range []recovery.Strategy{recovery.NewStrictStrategy(), recovery.NewLenientStrategy()} {
			p := newQuietParser(strategy)
			doc, err := p.Parse(context.Background(), data)
			if doc == nil && err == nil {
				t.Fatal("nil document without an error")
			}
		}
	})
}

func FuzzReadPreview(f *testing.F) {
	f.Add(previewFile())
	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := ReadPreview(data)
		if err == nil {
			_, _ = p.Image()
		}
	})
}
