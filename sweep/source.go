// SPDX-License-Identifier: MIT

package sweep

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/phonsep/activation"
	"github.com/katalvlaran/phonsep/segmentation"
)

// ErrLayerFileNotFound indicates that no file candidate of a layer exists.
var ErrLayerFileNotFound = errors.New("sweep: layer activation file not found")

// Source supplies the inputs of one system.
type Source interface {
	Segmentation() (*segmentation.Set, error)
	Layer(l activation.Layer) (activation.Layers, error)
}

// FileSource reads a system's inputs from JSON files on disk.
type FileSource struct {
	SegmentationPath string
	Dir              string
	Pattern          string
	SamplesPerFrame  int64
}

// NewFileSource builds the FileSource described by s.
func NewFileSource(s SystemConfig) *FileSource {
	return &FileSource{
		SegmentationPath: s.Segmentation,
		Dir:              s.ActivationsDir,
		Pattern:          s.FilePattern,
		SamplesPerFrame:  s.SamplesPerFrame,
	}
}

// Segmentation decodes the segmentation file.
func (src *FileSource) Segmentation() (*segmentation.Set, error) {
	f, err := os.Open(src.SegmentationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open segmentation: %w", err)
	}
	defer f.Close()

	var opts []segmentation.Option
	if src.SamplesPerFrame != 0 {
		opts = append(opts, segmentation.WithSamplesPerFrame(src.SamplesPerFrame))
	}
	set, err := segmentation.Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.SegmentationPath, err)
	}

	return set, nil
}

// LayerPath returns the first existing file for l, trying the pattern with
// l.Name(), then l.OldName(), then the numeric value.
func (src *FileSource) LayerPath(l activation.Layer) (string, error) {
	var tried []string
	for _, candidate := range l.FileCandidates() {
		p := filepath.Join(src.Dir, strings.ReplaceAll(src.Pattern, LayerPlaceholder, candidate))
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", p, err)
		}
		tried = append(tried, p)
	}

	return "", fmt.Errorf("%w: %s (tried %s)", ErrLayerFileNotFound, l, strings.Join(tried, ", "))
}

// Layer decodes the activation file of l.
func (src *FileSource) Layer(l activation.Layer) (activation.Layers, error) {
	p, err := src.LayerPath(l)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open activations: %w", err)
	}
	defer f.Close()

	layers, err := activation.DecodeLayers(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	return layers, nil
}
