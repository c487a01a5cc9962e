// SPDX-License-Identifier: MIT

package phonetics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/phonetics"
)

func TestPhoneByName_RoundTrip(t *testing.T) {
	t.Parallel()

	all := phonetics.AllPhones()
	require.Len(t, all, phonetics.NumPhones)
	assert.Equal(t, 42, phonetics.NumPhones)
	for i, p := range all {
		assert.Equal(t, i, int(p))
		got, err := phonetics.PhoneByName(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	assert.Equal(t, phonetics.Sil, all[0])
	assert.True(t, phonetics.Sil.IsSilence())
	assert.Equal(t, 10, int(phonetics.EA))
	assert.Equal(t, 30, int(phonetics.R))
	assert.Equal(t, 41, int(phonetics.Z))

	_, err := phonetics.PhoneByName("xx")
	assert.ErrorIs(t, err, phonetics.ErrUnknownPhone)
	assert.Equal(t, "Phone(99)", phonetics.Phone(99).String())
}

func TestFeatureByName(t *testing.T) {
	t.Parallel()

	require.Len(t, phonetics.AllFeatures(), 21)
	for _, f := range phonetics.AllFeatures() {
		got, err := phonetics.FeatureByName(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	assert.Equal(t, "open", phonetics.Open.String())
	assert.Equal(t, 20, int(phonetics.Open))

	_, err := phonetics.FeatureByName("open_")
	assert.ErrorIs(t, err, phonetics.ErrUnknownFeature)
}

func TestFeaturePhones(t *testing.T) {
	t.Parallel()

	cases := []struct {
		f    phonetics.Feature
		want []phonetics.Phone
	}{
		{phonetics.Nasal, []phonetics.Phone{phonetics.M, phonetics.N, phonetics.NG}},
		{phonetics.Affricate, []phonetics.Phone{phonetics.CH, phonetics.JH}},
		{phonetics.Sibilant, []phonetics.Phone{phonetics.CH, phonetics.JH, phonetics.S, phonetics.SH, phonetics.Z}},
		{phonetics.Labial, []phonetics.Phone{phonetics.B, phonetics.F, phonetics.M, phonetics.P, phonetics.V}},
		{phonetics.Stop, []phonetics.Phone{phonetics.B, phonetics.D, phonetics.G, phonetics.K, phonetics.P, phonetics.T}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.f.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.f.Phones())
			for _, p := range tc.want {
				assert.Contains(t, p.Features(), tc.f)
				assert.True(t, p.HasFeature(tc.f))
			}
		})
	}
}

func TestSilenceHasNoFeatures(t *testing.T) {
	t.Parallel()

	assert.Empty(t, phonetics.Sil.Features())
	for _, f := range phonetics.AllFeatures() {
		assert.NotContains(t, f.Phones(), phonetics.Sil)
	}
	for _, h := range phonetics.AllHierarchies() {
		_, ok := phonetics.Sil.HierarchyFeature(h)
		assert.False(t, ok, h.String())
	}
}

func TestHierarchyFeature(t *testing.T) {
	t.Parallel()

	cases := []struct {
		p    phonetics.Phone
		h    phonetics.Hierarchy
		want phonetics.Feature
		ok   bool
	}{
		{phonetics.B, phonetics.Place, phonetics.Labial, true},
		{phonetics.HH, phonetics.Place, 0, false},
		{phonetics.HH, phonetics.Manner, phonetics.Approximant, true},
		{phonetics.Z, phonetics.Manner, phonetics.Fricative, true},
		{phonetics.IY, phonetics.Front, phonetics.FrontVowel, true},
		{phonetics.IY, phonetics.Place, 0, false},
		{phonetics.K, phonetics.Front, 0, false},
		{phonetics.OW, phonetics.Close, phonetics.CloseMid, true},
		{phonetics.UW, phonetics.Close, phonetics.CloseVowel, true},
		{phonetics.AA, phonetics.PlaceFront, phonetics.Back, true},
		{phonetics.NG, phonetics.PlaceFront, phonetics.Dorsal, true},
		{phonetics.HH, phonetics.PlaceFront, 0, false},
		{phonetics.AY, phonetics.MannerClose, phonetics.Open, true},
		{phonetics.JH, phonetics.MannerClose, phonetics.Affricate, true},
	}
	for _, tc := range cases {
		got, ok := tc.p.HierarchyFeature(tc.h)
		assert.Equalf(t, tc.ok, ok, "%s/%s", tc.p, tc.h)
		assert.Equalf(t, tc.want, got, "%s/%s", tc.p, tc.h)
	}

	_, err := phonetics.HH.MustHierarchyFeature(phonetics.Place)
	assert.ErrorIs(t, err, phonetics.ErrNotApplicable)
	f, err := phonetics.T.MustHierarchyFeature(phonetics.Place)
	require.NoError(t, err)
	assert.Equal(t, phonetics.Coronal, f)
}

// Every non-silence phone has a MannerClose value and every phone except hh
// has a PlaceFront value.
func TestCombinedHierarchiesAreExhaustive(t *testing.T) {
	t.Parallel()

	for _, p := range phonetics.AllPhones()[1:] {
		_, ok := p.HierarchyFeature(phonetics.MannerClose)
		assert.True(t, ok, p.String())
		_, ok = p.HierarchyFeature(phonetics.PlaceFront)
		assert.Equal(t, p != phonetics.HH, ok, p.String())
	}
}

// Hierarchy features agree with the membership table.
func TestHierarchyConsistentWithMembership(t *testing.T) {
	t.Parallel()

	for _, h := range []phonetics.Hierarchy{phonetics.Place, phonetics.Manner, phonetics.Front} {
		for _, p := range phonetics.AllPhones() {
			if f, ok := p.HierarchyFeature(h); ok {
				assert.Truef(t, p.HasFeature(f), "%s should carry %s", p, f)
			}
		}
	}
	assert.ElementsMatch(t,
		[]phonetics.Feature{phonetics.Labial, phonetics.Coronal, phonetics.Dorsal},
		phonetics.Place.Features())
}

func TestLabellings(t *testing.T) {
	t.Parallel()

	c, ok := phonetics.PhoneLabelling(phonetics.Z)
	assert.True(t, ok)
	assert.Equal(t, 41, c)
	_, ok = phonetics.PhoneLabelling(phonetics.Sil)
	assert.False(t, ok)

	assert.Equal(t,
		[]string{"phone", "place", "manner", "front", "close", "place_front", "manner_close"},
		phonetics.LabellingNames())
	for _, name := range phonetics.LabellingNames() {
		l, err := phonetics.LabellingByName(name)
		require.NoError(t, err, name)
		_, ok = l(phonetics.Sil)
		assert.False(t, ok, name)
	}

	manner, err := phonetics.LabellingByName("manner")
	require.NoError(t, err)
	c, ok = manner(phonetics.M)
	assert.True(t, ok)
	assert.Equal(t, int(phonetics.Nasal), c)
	_, ok = manner(phonetics.AA)
	assert.False(t, ok)

	_, err = phonetics.LabellingByName("voicing")
	assert.ErrorIs(t, err, phonetics.ErrUnknownLabelling)
}
