package assets

import (
	"bytes"
	"embed"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"path"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/tankgame/logger"
)

const sampleRate = 44100

//go:embed *.png *.wav
var assetsFS embed.FS

var (
	textures     = map[string]*ebiten.Image{}
	sounds       = map[string][]byte{}
	missing      = map[string]bool{}
	audioContext *audio.Context
)

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Texture returns the image for a texture name, cached. Names without an
// extension are looked up as .png. A texture that cannot be loaded is
// replaced by a flat square whose colour is derived from the name, so a
// level with unknown textures still draws.
func Texture(name string) *ebiten.Image {
	file := textureFile(name)
	if img, ok := textures[file]; ok {
		return img
	}
	img, err := LoadImage(file)
	if err != nil {
		logger.Log.WithError(err).WithField("texture", name).Debug("using placeholder texture")
		img = ebiten.NewImage(32, 32)
		img.Fill(PlaceholderColor(name))
	}
	textures[file] = img
	return img
}

// PlaceholderColor is a stable opaque colour for name.
func PlaceholderColor(name string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	v := h.Sum32()
	return color.RGBA{R: 64 + uint8(v)%160, G: 64 + uint8(v>>8)%160, B: 64 + uint8(v>>16)%160, A: 255}
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ctx := audioCtx()
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}
	return ctx.NewPlayerFromBytes(b), nil
}

// PlaySound plays a sound effect once. Unknown sounds are logged the first
// time and then ignored.
func PlaySound(name string) {
	if name == "" || missing[name] {
		return
	}
	pcm, ok := sounds[name]
	if !ok {
		b, err := LoadFile(name)
		if err == nil {
			var stream *wav.Stream
			stream, err = wav.DecodeWithSampleRate(audioCtx().SampleRate(), bytes.NewReader(b))
			if err == nil {
				var buf bytes.Buffer
				_, err = buf.ReadFrom(stream)
				pcm = buf.Bytes()
			}
		}
		if err != nil {
			logger.Log.WithError(err).WithField("sound", name).Warn("sound unavailable")
			missing[name] = true
			return
		}
		sounds[name] = pcm
	}
	audioCtx().NewPlayerFromBytes(pcm).Play()
}

func audioCtx() *audio.Context {
	if audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}
	return audioContext
}

func textureFile(name string) string {
	clean := cleanAssetPath(name)
	if clean != "" && path.Ext(clean) == "" {
		clean += ".png"
	}
	return clean
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		s := filepath.ToSlash(p)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(p)
	}
	return strings.TrimPrefix(filepath.ToSlash(p), "assets/")
}
