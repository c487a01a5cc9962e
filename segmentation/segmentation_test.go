// SPDX-License-Identifier: MIT

package segmentation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phonsep/phonetics"
	"github.com/katalvlaran/phonsep/segmentation"
)

func sampleRecords() map[string][]segmentation.Record {
	return map[string][]segmentation.Record{
		"dog": {
			{Onset: 0, Offset: 100_000, Label: "sil"},
			{Onset: 100_000, Offset: 350_000, Label: "d"},
			{Onset: 350_000, Offset: 600_000, Label: "oh"},
		},
		"cat": {
			{Onset: 0, Offset: 299_999, Label: "k"},
			{Onset: 299_999, Offset: 700_000, Label: "ae"},
		},
	}
}

func TestNew_FramesAndOrder(t *testing.T) {
	t.Parallel()

	s, err := segmentation.New(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog"}, s.Words())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, segmentation.DefaultSamplesPerFrame, s.SamplesPerFrame())

	cat, err := s.Segments("cat")
	require.NoError(t, err)
	require.Len(t, cat, 2)
	assert.Equal(t, phonetics.K, cat[0].Label)
	assert.Equal(t, 0, cat[0].OnsetFrame)
	assert.Equal(t, 2, cat[0].OffsetFrame, "frames are floored")
	assert.Equal(t, 2, cat[0].Frames())
	assert.Equal(t, 2, cat[1].OnsetFrame)
	assert.Equal(t, 7, cat[1].OffsetFrame)

	dog, err := s.Segments("dog")
	require.NoError(t, err)
	assert.Equal(t, []phonetics.Phone{phonetics.Sil, phonetics.D, phonetics.OH},
		[]phonetics.Phone{dog[0].Label, dog[1].Label, dog[2].Label})
}

func TestNew_SamplesPerFrame(t *testing.T) {
	t.Parallel()

	s, err := segmentation.New(sampleRecords(), segmentation.WithSamplesPerFrame(50_000))
	require.NoError(t, err)
	dog, err := s.Segments("dog")
	require.NoError(t, err)
	assert.Equal(t, 2, dog[1].OnsetFrame)
	assert.Equal(t, 7, dog[1].OffsetFrame)

	_, err = segmentation.New(sampleRecords(), segmentation.WithSamplesPerFrame(0))
	assert.ErrorIs(t, err, segmentation.ErrBadFrameSize)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		recs map[string][]segmentation.Record
		want error
	}{
		{"EmptyWord", map[string][]segmentation.Record{"": {{0, 1, "aa"}}}, segmentation.ErrEmptyWord},
		{"NegativeOnset", map[string][]segmentation.Record{"a": {{-1, 1, "aa"}}}, segmentation.ErrBadSpan},
		{"Reversed", map[string][]segmentation.Record{"a": {{5, 1, "aa"}}}, segmentation.ErrBadSpan},
		{"UnknownPhone", map[string][]segmentation.Record{"a": {{0, 1, "qq"}}}, phonetics.ErrUnknownPhone},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := segmentation.New(tc.recs)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSegments_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s, err := segmentation.New(sampleRecords())
	require.NoError(t, err)
	segs, err := s.Segments("cat")
	require.NoError(t, err)
	segs[0].Label = phonetics.Z

	again, err := s.Segments("cat")
	require.NoError(t, err)
	assert.Equal(t, phonetics.K, again[0].Label)

	_, err = s.Segments("cow")
	assert.ErrorIs(t, err, segmentation.ErrUnknownWord)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	src := `{"pin": [{"onset": 0, "offset": 200000, "label": "p"},
	                 {"onset": 200000, "offset": 500000, "label": "ih"},
	                 {"onset": 500000, "offset": 800000, "label": "n"}]}`
	s, err := segmentation.Decode(strings.NewReader(src))
	require.NoError(t, err)
	segs, err := s.Segments("pin")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, phonetics.N, segs[2].Label)
	assert.Equal(t, 8, segs[2].OffsetFrame)

	_, err = segmentation.Decode(strings.NewReader(`{"pin": [{"start": 0}]}`))
	assert.Error(t, err)
	_, err = segmentation.Decode(strings.NewReader(`{"pin": [{"onset": 0, "offset": 1, "label": "xx"}]}`))
	assert.ErrorIs(t, err, phonetics.ErrUnknownPhone)
}

func TestDecode_RejectsMalformedDocuments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want error
	}{
		{"repeated word", `{"pin": [{"onset": 0, "offset": 100000, "label": "p"}],
		                   "pin": [{"onset": 0, "offset": 100000, "label": "b"}]}`, segmentation.ErrDuplicateWord},
		{"not an object", `[{"onset": 0, "offset": 1, "label": "p"}]`, nil},
		{"truncated", `{"pin": [{"onset": 0, "offset": 1, "label": "p"}]`, nil},
		{"empty word", `{"": [{"onset": 0, "offset": 1, "label": "p"}]}`, segmentation.ErrEmptyWord},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := segmentation.Decode(strings.NewReader(tc.src))
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}

	s, err := segmentation.Decode(strings.NewReader(`{"pin": [{"onset": 0, "offset": 100000, "label": "p"}],
	                                                  "bin": [{"onset": 0, "offset": 100000, "label": "b"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}
