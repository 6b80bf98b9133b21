package component

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cannonFile = `; main gun
WeaponName = Cannon
Damage=25
ClipSize=1
ReloadDelay=1500
FiringDelay=400
FireSound=cannon.wav
Texture=shell.png
ImpactTexture=blast.png
Recoil=9
`

func TestParseWeaponData(t *testing.T) {
	d, err := ParseWeaponData(strings.NewReader(cannonFile))
	require.NoError(t, err)
	assert.Equal(t, "Cannon", d.Name)
	assert.Equal(t, float32(25), d.Damage)
	assert.Equal(t, 1, d.ClipSize)
	assert.Equal(t, 1500*time.Millisecond, d.ReloadDelay)
	assert.Equal(t, 400*time.Millisecond, d.FiringDelay)
	assert.Equal(t, "cannon.wav", d.FireSound)
	assert.Equal(t, "shell.png", d.Texture)
	assert.Equal(t, "blast.png", d.ImpactTexture)
}

func TestParseWeaponDataErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no name", "Damage=3\n"},
		{"bad number", "WeaponName=x\nDamage=lots\n"},
		{"negative delay", "WeaponName=x\nFiringDelay=-1\n"},
		{"nan damage", "WeaponName=x\nDamage=NaN\n"},
		{"infinite damage", "WeaponName=x\nDamage=+Inf\n"},
		{"nan delay", "WeaponName=x\nReloadDelay=NaN\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseWeaponData(strings.NewReader(c.body))
			assert.Error(t, err)
		})
	}
}

func TestParseWeaponDataSkipsLinesWithoutValue(t *testing.T) {
	d, err := ParseWeaponData(strings.NewReader("WeaponName=mg\nDamage\nrapid fire\nClipSize=30\n"))
	require.NoError(t, err)
	assert.Equal(t, "mg", d.Name)
	assert.Zero(t, d.Damage)
	assert.Equal(t, 30, d.ClipSize)
}

func TestFireSingleRoundClip(t *testing.T) {
	d, err := ParseWeaponData(strings.NewReader(cannonFile))
	require.NoError(t, err)
	w := NewWeapon(d)

	now := time.Second
	require.True(t, w.Fire(now))
	assert.False(t, w.Fire(now+100*time.Millisecond), "second shot inside the firing delay")
	assert.True(t, w.Reloading(now+100*time.Millisecond))

	assert.True(t, w.Reloading(now+1499*time.Millisecond))
	assert.False(t, w.Reloading(now+1500*time.Millisecond))
	assert.Equal(t, 1, w.Rounds())
	assert.True(t, w.Fire(now+1500*time.Millisecond))
}

func TestFireRespectsDelayAndClip(t *testing.T) {
	w := NewWeapon(WeaponData{
		Name:        "MG",
		ClipSize:    3,
		FiringDelay: 100 * time.Millisecond,
		ReloadDelay: time.Second,
	})

	assert.True(t, w.Fire(0))
	assert.False(t, w.Fire(50*time.Millisecond))
	assert.False(t, w.Reloading(50*time.Millisecond))
	assert.True(t, w.Fire(100*time.Millisecond))
	assert.True(t, w.Fire(200*time.Millisecond))
	assert.Zero(t, w.Rounds())
	assert.False(t, w.Fire(300*time.Millisecond))
	assert.True(t, w.Reloading(300*time.Millisecond))
	assert.True(t, w.Fire(1200*time.Millisecond))
	assert.Equal(t, 2, w.Rounds())
}

func TestSetDataClampsClip(t *testing.T) {
	w := NewWeapon(WeaponData{Name: "MG", ClipSize: 10})
	w.SetData(WeaponData{Name: "MG", ClipSize: 4})
	assert.Equal(t, 4, w.Rounds())
}
